package ports

import (
	"context"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// RecordRepository handles the daily totals snapshots.
type RecordRepository interface {
	// Upsert replaces the totals of the record for date, creating it when
	// missing. Totals are never merged.
	Upsert(ctx context.Context, date string, totals domain.Totals) (*domain.Record, error)
	FindByDate(ctx context.Context, date string) (*domain.Record, error)
	FindByID(ctx context.Context, id string) (*domain.Record, error)
	// ListAll returns every record sorted ascending by date.
	ListAll(ctx context.Context) ([]domain.Record, error)
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn so that its repository calls commit or fail together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
