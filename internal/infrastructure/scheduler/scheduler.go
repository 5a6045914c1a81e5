// Package scheduler saves the daily report on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

const runTimeout = 2 * time.Minute

// ReportSaver is the part of the report service the scheduler drives.
type ReportSaver interface {
	SaveReport(ctx context.Context) (*domain.Record, error)
}

// Scheduler runs SaveReport on a standard five-field cron spec.
type Scheduler struct {
	cron   *cron.Cron
	saver  ReportSaver
	spec   string
	logger zerolog.Logger
}

// New parses spec in loc. An empty spec returns a nil Scheduler, which is
// safe to Start and Stop.
func New(spec string, loc *time.Location, saver ReportSaver, logger zerolog.Logger) (*Scheduler, error) {
	if spec == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		saver:  saver,
		spec:   spec,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
	if _, err := s.cron.AddFunc(spec, s.saveReport); err != nil {
		return nil, fmt.Errorf("schedule report %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.logger.Info().Str("spec", s.spec).Msg("starting scheduler")
	s.cron.Start()
}

// Stop stops the cron loop and waits for a running save to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.logger.Info().Msg("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) saveReport() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	rec, err := s.saver.SaveReport(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled report failed")
		return
	}
	s.logger.Info().Str("date", rec.Date).Int("ingredients", len(rec.Totals)).Msg("scheduled report saved")
}
