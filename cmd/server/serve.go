package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vendops/inventory-admin/internal/api"
	"github.com/vendops/inventory-admin/internal/api/metrics"
	"github.com/vendops/inventory-admin/internal/api/view"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
	"github.com/vendops/inventory-admin/internal/core/service"
	mongodb "github.com/vendops/inventory-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/vendops/inventory-admin/internal/infrastructure/db/redis"
	"github.com/vendops/inventory-admin/internal/infrastructure/export"
	"github.com/vendops/inventory-admin/internal/infrastructure/http/handlers"
	"github.com/vendops/inventory-admin/internal/infrastructure/scheduler"
	"github.com/vendops/inventory-admin/internal/pkg/config"
	"github.com/vendops/inventory-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, opts *rootOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, opts.envFile)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inventory-admin",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close mongodb connection")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	admins := mongodb.NewAdminRepository(db)
	machines := mongodb.NewMachineRepository(db)
	records := mongodb.NewRecordRepository(db)
	if err := mongodb.EnsureIndexes(ctx, admins, machines, records); err != nil {
		return err
	}

	authSvc := service.NewAuthService(admins, redisdb.NewRevoker(rdb), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, component(log, "auth"))
	if cfg.Auth.AdminPassword == "" {
		log.Warn().Str("username", cfg.Auth.AdminUsername).Msg("ADMIN_PASSWORD not set, skipping admin seed")
	} else if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	clock := service.Clock{Now: time.Now, Location: cfg.Location()}
	inventorySvc := service.NewInventoryService(machines, component(log, "inventory"))
	reportSvc := service.NewReportService(
		machines,
		records,
		mongodb.NewTransactor(client, cfg.Mongo.Transactions),
		map[domain.ReportFormat]ports.ReportRenderer{
			domain.FormatText: export.NewTextRenderer(),
			domain.FormatPDF:  export.NewPDFRenderer(),
		},
		cfg.ResetPolicy(),
		clock,
		component(log, "reports"),
	)

	sched, err := scheduler.New(cfg.ReportCron, cfg.Location(), scheduledSaver{reportSvc}, log)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Inventory: inventorySvc,
		Reports:   reportSvc,
		Readiness: map[string]handlers.Pinger{
			"mongodb": mongodb.NewPinger(client),
			"redis":   redisdb.NewPinger(rdb),
		},
		Renderer:     renderer,
		Today:        clock.Today,
		SecureCookie: cfg.Auth.CookieSecure,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("reset_policy", string(cfg.ResetPolicy())).
			Str("timezone", cfg.Location().String()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// scheduledSaver records metrics for snapshots taken by the scheduler.
type scheduledSaver struct {
	reports ports.ReportService
}

func (s scheduledSaver) SaveReport(ctx context.Context) (*domain.Record, error) {
	timer := prometheus.NewTimer(metrics.ReportSaveDuration)
	defer timer.ObserveDuration()

	rec, err := s.reports.SaveReport(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ReportsSavedTotal.WithLabelValues("scheduled").Inc()
	return rec, nil
}
