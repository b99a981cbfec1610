package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestOrderCategories(t *testing.T) {
	catalog := []domain.ServiceEntry{
		{Category: "Cera", Zone: "Axilas"},
		{Category: "Láser", Zone: "Axilas"},
		{Category: "Descartable", Zone: "Axilas"},
		{Category: "Láser", Zone: "Cara"},
	}

	assert.Equal(t, []string{"Descartable", "Láser", "Cera"}, OrderCategories(catalog))
}

func TestBuildZoneOptions_SeedCatalog(t *testing.T) {
	opts := BuildZoneOptions(domain.DefaultCatalog(), "Láser")

	require.Len(t, opts.Groups, 3)
	assert.Equal(t, "Piernas", opts.Groups[0].Name)
	assert.Equal(t, []string{"Medias piernas", "Piernas completas"}, opts.Groups[0].Members)
	assert.Equal(t, []string{"Axilas", "Cavado", "Tiro de cola"}, opts.Loose)
}

func TestBuildZoneOptions_LoneGroupMemberIsLoose(t *testing.T) {
	catalog := []domain.ServiceEntry{
		{Category: "Cera", Zone: "Cara"},
		{Category: "Cera", Zone: "Brazos"},
		{Category: "Cera", Zone: "Medio brazo"},
	}

	opts := BuildZoneOptions(catalog, "Cera")

	require.Len(t, opts.Groups, 1)
	assert.Equal(t, "Brazos", opts.Groups[0].Name)
	assert.Equal(t, []string{"Cara"}, opts.Loose)
}

func TestBuildZoneSelection(t *testing.T) {
	opts := BuildZoneOptions(domain.DefaultCatalog(), "Láser")

	zones, err := BuildZoneSelection(opts,
		map[string]string{"Rostro": "Cara", "Piernas": "Medias piernas", "Brazos": ""},
		[]string{"Axilas", "Axilas"},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"Medias piernas", "Cara", "Axilas"}, zones)
}

func TestBuildZoneSelection_Errors(t *testing.T) {
	opts := BuildZoneOptions(domain.DefaultCatalog(), "Láser")

	_, err := BuildZoneSelection(opts, map[string]string{"Piernas": "Cara"}, nil)
	assert.ErrorIs(t, err, ErrNotGroupMember)

	_, err = BuildZoneSelection(opts, map[string]string{"Espalda": "Espalda"}, nil)
	assert.ErrorIs(t, err, ErrUnknownGroup)

	_, err = BuildZoneSelection(opts, nil, []string{"Brazos"})
	assert.ErrorIs(t, err, ErrZoneNotOffered)
}

func TestCheckExclusiveZones(t *testing.T) {
	catalog := domain.DefaultCatalog()

	tests := []struct {
		name    string
		zones   []string
		wantErr bool
	}{
		{name: "one per group", zones: []string{"Brazos", "Cara", "Medias piernas", "Axilas"}},
		{name: "loose only", zones: []string{"Axilas"}},
		{name: "empty", zones: nil},
		{name: "two arms", zones: []string{"Brazos", "Medio brazo"}, wantErr: true},
		{name: "two faces among others", zones: []string{"Axilas", "Cara", "Rostro completo"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExclusiveZones(catalog, "Láser", tt.zones)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrExclusiveZones)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckExclusiveZones_LoneMemberIsFree(t *testing.T) {
	// В категории есть только один вариант руки, группы нет
	catalog := []domain.ServiceEntry{
		{Category: "Cera", Zone: "Medio brazo", DurationMinutes: 20, Price: 5000},
		{Category: "Cera", Zone: "Axilas", DurationMinutes: 10, Price: 3000},
	}

	assert.NoError(t, CheckExclusiveZones(catalog, "Cera", []string{"Medio brazo", "Brazos", "Axilas"}))
}
