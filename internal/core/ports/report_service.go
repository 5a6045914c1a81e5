package ports

import (
	"context"
	"io"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// ReportRenderer turns records into a downloadable document.
type ReportRenderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, records []domain.Record) error
}

// ExportInput is the generate-report form.
type ExportInput struct {
	Format domain.ReportFormat
	Mode   domain.SelectionMode
	Date   string
}

// ExportResult describes a ready-to-render report. Write may fail part way,
// so callers render fully before committing a response.
type ExportResult struct {
	Filename    string
	ContentType string
	Records     []domain.Record
	Write       func(w io.Writer) error
}

// ReportService defines the totals snapshot and export use cases.
type ReportService interface {
	SaveReport(ctx context.Context) (*domain.Record, error)
	SaveTotals(ctx context.Context, totals domain.Totals, date string) (*domain.Record, error)
	SelectRecords(ctx context.Context, mode domain.SelectionMode, date string) ([]domain.Record, error)
	ListRecords(ctx context.Context) ([]domain.Record, error)
	GetRecord(ctx context.Context, id string) (*domain.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	Export(ctx context.Context, input ExportInput) (*ExportResult, error)
}
