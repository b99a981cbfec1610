package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeCatalogRepo struct {
	entries  []domain.ServiceEntry
	replaced []domain.ServiceEntry
	err      error
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]domain.ServiceEntry, error) {
	return f.entries, f.err
}

func (f *fakeCatalogRepo) ReplaceAll(_ context.Context, entries []domain.ServiceEntry) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = entries
	return nil
}

type countingTx struct{ calls int }

func (c *countingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func newTestService(repo *fakeCatalogRepo) (*Service, *countingTx) {
	tx := &countingTx{}
	return NewService(repo, tx, logger.NewNop()), tx
}

func TestCategories_PreferredFirst(t *testing.T) {
	repo := &fakeCatalogRepo{entries: append([]domain.ServiceEntry{{Category: "Cera", Zone: "Axilas", DurationMinutes: 10, Price: 3000}}, domain.DefaultCatalog()...)}
	svc, _ := newTestService(repo)

	resp, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Descartable", "Láser", "Cera"}, resp.Categories)
}

func TestOptions(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{entries: domain.DefaultCatalog()})

	resp, err := svc.Options(context.Background(), "Láser")

	require.NoError(t, err)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "Piernas", resp.Groups[0].Name)
	assert.Equal(t, []string{"Axilas", "Cavado", "Tiro de cola"}, resp.Zones)
}

func TestOptions_UnknownCategory(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{entries: domain.DefaultCatalog()})

	_, err := svc.Options(context.Background(), "Cera")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestQuote_Zones(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{entries: domain.DefaultCatalog()})

	resp, err := svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", Zones: []string{"Axilas", "Brazos"}})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, 26000, resp.Price)
}

func TestQuote_GroupChoices(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{entries: domain.DefaultCatalog()})

	resp, err := svc.Quote(context.Background(), &models.QuoteRequest{
		Category:     "Descartable",
		GroupChoices: map[string]string{"Piernas": "Medias piernas", "Rostro": ""},
		Extras:       []string{"Axilas"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Medias piernas", "Axilas"}, resp.Zones)
	assert.Equal(t, 50, resp.DurationMinutes)
	assert.Equal(t, 18000, resp.Price)
}

func TestQuote_Errors(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{entries: domain.DefaultCatalog()})

	_, err := svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", Zones: []string{"Espalda"}})
	assert.ErrorIs(t, err, ErrNoServicesSelected)

	_, err = svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", GroupChoices: map[string]string{"Piernas": "Cara"}})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", Extras: []string{"Brazos"}})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	// плоский список зон тоже проверяется по группам
	_, err = svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", Zones: []string{"Brazos", "Medio brazo"}})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.ErrorContains(t, err, "Brazos")
}

func TestQuote_RepositoryError(t *testing.T) {
	svc, _ := newTestService(&fakeCatalogRepo{err: errors.New("db down")})

	_, err := svc.Quote(context.Background(), &models.QuoteRequest{Category: "Láser", Zones: []string{"Axilas"}})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestReplaceAll_Normalizes(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc, tx := newTestService(repo)

	resp, err := svc.ReplaceAll(context.Background(), &models.ReplaceCatalogRequest{Services: []models.ServiceEntryDTO{
		{Category: " Láser ", Zone: "Axilas ", DurationMinutes: 15, Price: 8000},
		{Category: "Láser", Zone: "Axilas", DurationMinutes: 99, Price: 1},
		{Category: "", Zone: "Cara", DurationMinutes: 10, Price: 10},
	}})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, repo.replaced, 1)
	assert.Equal(t, domain.ServiceEntry{Category: "Láser", Zone: "Axilas", DurationMinutes: 15, Price: 8000}, repo.replaced[0])
	assert.Len(t, resp.Services, 1)
}

func TestReplaceAll_RejectsNegative(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc, tx := newTestService(repo)

	_, err := svc.ReplaceAll(context.Background(), &models.ReplaceCatalogRequest{Services: []models.ServiceEntryDTO{
		{Category: "Láser", Zone: "Axilas", DurationMinutes: 15, Price: -1},
	}})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, tx.calls)
	assert.Nil(t, repo.replaced)
}
