package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestComputeDurationAndPrice_SeedCatalog(t *testing.T) {
	catalog := domain.DefaultCatalog()
	zones := []string{"Axilas", "Brazos"}

	assert.Equal(t, 45, ComputeDuration(catalog, "Láser", zones))
	assert.Equal(t, 26000, ComputePrice(catalog, "Láser", zones))
}

func TestComputeDuration_Additive(t *testing.T) {
	catalog := domain.DefaultCatalog()

	both := ComputeDuration(catalog, "Descartable", []string{"Cara", "Cavado"})
	a := ComputeDuration(catalog, "Descartable", []string{"Cara"})
	b := ComputeDuration(catalog, "Descartable", []string{"Cavado"})

	assert.Equal(t, a+b, both)
}

func TestComputeDuration_ZonesAreASet(t *testing.T) {
	catalog := domain.DefaultCatalog()

	assert.Equal(t,
		ComputeDuration(catalog, "Láser", []string{"Brazos", "Axilas"}),
		ComputeDuration(catalog, "Láser", []string{"Axilas", "Brazos", "Axilas"}),
	)
}

func TestComputeDuration_NoMatch(t *testing.T) {
	catalog := domain.DefaultCatalog()

	assert.Zero(t, ComputeDuration(catalog, "Láser", nil))
	assert.Zero(t, ComputeDuration(catalog, "Láser", []string{"Espalda"}))
	assert.Zero(t, ComputeDuration(catalog, "Cera", []string{"Axilas"}))
	assert.Zero(t, ComputePrice(catalog, "Cera", []string{"Axilas"}))
}

func TestComputeDuration_DuplicateKeyKeepsFirst(t *testing.T) {
	catalog := []domain.ServiceEntry{
		{Category: "Láser", Zone: "Axilas", DurationMinutes: 15, Price: 8000},
		{Category: "Láser", Zone: "Axilas", DurationMinutes: 99, Price: 1},
	}

	assert.Equal(t, 15, ComputeDuration(catalog, "Láser", []string{"Axilas"}))
	assert.Equal(t, 8000, ComputePrice(catalog, "Láser", []string{"Axilas"}))
}
