package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const table = "services"

// Repository репозиторий прайс-листа
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает каталог в порядке ввода
func (r *Repository) List(ctx context.Context) ([]domain.ServiceEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("category", "zone", "duration_minutes", "price").
		From(table).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.ServiceEntry, 0)
	for rows.Next() {
		var e domain.ServiceEntry
		if err := rows.Scan(&e.Category, &e.Zone, &e.DurationMinutes, &e.Price); err != nil {
			return nil, fmt.Errorf("%w: List - scan entry: %w", ErrScanRow, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return entries, nil
}

// ReplaceAll заменяет весь каталог. Вызывать внутри транзакции.
func (r *Repository) ReplaceAll(ctx context.Context, entries []domain.ServiceEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %w", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert(table).
		Columns("category", "zone", "duration_minutes", "price")
	for _, e := range entries {
		builder = builder.Values(e.Category, e.Zone, e.DurationMinutes, e.Price)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
