package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// Clock supplies the wall-clock time and the zone a calendar day is taken in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.now().Format(domain.DateLayout)
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

type reportService struct {
	machines  ports.MachineRepository
	records   ports.RecordRepository
	tx        ports.Transactor
	renderers map[domain.ReportFormat]ports.ReportRenderer
	policy    domain.ResetPolicy
	clock     Clock
	log       zerolog.Logger
}

// NewReportService returns a ReportService implementation.
func NewReportService(
	machines ports.MachineRepository,
	records ports.RecordRepository,
	tx ports.Transactor,
	renderers map[domain.ReportFormat]ports.ReportRenderer,
	policy domain.ResetPolicy,
	clock Clock,
	log zerolog.Logger,
) ports.ReportService {
	if policy == "" {
		policy = domain.ResetUnselect
	}
	return &reportService{
		machines:  machines,
		records:   records,
		tx:        tx,
		renderers: renderers,
		policy:    policy,
		clock:     clock,
		log:       log,
	}
}

// SaveReport snapshots the selected machines into today's record and then
// resets the fleet according to the configured policy. Both steps run in one
// transaction; without transaction support the sequence is safe to re-run.
func (s *reportService) SaveReport(ctx context.Context) (*domain.Record, error) {
	date := s.clock.Today()

	var saved *domain.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		machines, err := s.machines.List(ctx, ports.MachineFilter{SelectedOnly: true})
		if err != nil {
			return fmt.Errorf("load machines: %w", err)
		}

		totals := domain.Aggregate(machines, domain.Selected)
		saved, err = s.SaveTotals(ctx, totals, date)
		if err != nil {
			return err
		}

		n, err := s.reset(ctx)
		if err != nil {
			return fmt.Errorf("reset machines (%s): %w", s.policy, err)
		}

		s.log.Info().
			Str("date", date).
			Int("machines", len(machines)).
			Int("ingredients", len(totals)).
			Int64("reset", n).
			Str("policy", string(s.policy)).
			Msg("report saved")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return saved, nil
}

// SaveTotals stores totals as the complete snapshot for date, replacing any
// earlier snapshot for the same day.
func (s *reportService) SaveTotals(ctx context.Context, totals domain.Totals, date string) (*domain.Record, error) {
	if !domain.IsValidDate(date) {
		return nil, fmt.Errorf("save totals: %w (date %q)", domain.ErrInvalidSelection, date)
	}
	if totals == nil {
		totals = domain.Totals{}
	}
	rec, err := s.records.Upsert(ctx, date, totals)
	if err != nil {
		return nil, fmt.Errorf("save totals: %w", err)
	}
	return rec, nil
}

func (s *reportService) reset(ctx context.Context) (int64, error) {
	switch s.policy {
	case domain.ResetZero:
		return s.machines.ZeroQuantities(ctx)
	case domain.ResetUnselect:
		return s.machines.UnselectAll(ctx)
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidResetPolicy, s.policy)
	}
}

// SelectRecords returns the record for one exact date, or every record
// ordered by date.
func (s *reportService) SelectRecords(ctx context.Context, mode domain.SelectionMode, date string) ([]domain.Record, error) {
	switch mode {
	case domain.SelectSingle:
		if !domain.IsValidDate(date) {
			return nil, fmt.Errorf("select records: %w (date %q)", domain.ErrInvalidSelection, date)
		}
		rec, err := s.records.FindByDate(ctx, date)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return []domain.Record{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("select records: %w", err)
		}
		return []domain.Record{*rec}, nil
	case domain.SelectAll:
		recs, err := s.records.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("select records: %w", err)
		}
		return recs, nil
	default:
		return nil, fmt.Errorf("select records: %w (mode %q)", domain.ErrInvalidSelection, mode)
	}
}

func (s *reportService) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return s.SelectRecords(ctx, domain.SelectAll, "")
}

func (s *reportService) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (s *reportService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.log.Info().Str("record_id", id).Msg("record deleted")
	return nil
}

// Export selects the records and prepares the document for streaming.
func (s *reportService) Export(ctx context.Context, in ports.ExportInput) (*ports.ExportResult, error) {
	renderer, ok := s.renderers[in.Format]
	if !ok {
		return nil, fmt.Errorf("export: %w: %q", domain.ErrInvalidReportFormat, in.Format)
	}

	records, err := s.SelectRecords(ctx, in.Mode, in.Date)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: %w", domain.ErrNoRecords)
	}

	filename := fmt.Sprintf("inventory-report-%s.%s", s.clock.now().Format("20060102-150405"), renderer.Extension())
	return &ports.ExportResult{
		Filename:    filename,
		ContentType: renderer.ContentType(),
		Records:     records,
		Write: func(w io.Writer) error {
			return renderer.Render(w, records)
		},
	}, nil
}
