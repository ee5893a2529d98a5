// Package main is the entry point for the ecoledger analytics service.
// The service reads loan, portfolio, trade, document, monitoring and rate
// records from the lending backend and serves dashboard and chart datasets.
//
// Startup sequence:
//   - configuration and logging
//   - record source (backend REST API, SQLite file or PostgreSQL)
//   - metrics, event bus and chart service
//   - optional scheduled dashboard refresh
//   - HTTP server, then graceful shutdown on SIGINT/SIGTERM
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

	"github.com/aristath/ecoledger/internal/config"
	"github.com/aristath/ecoledger/internal/database"
	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/aristath/ecoledger/internal/scheduler"
	"github.com/aristath/ecoledger/internal/server"
	"github.com/aristath/ecoledger/internal/sources"
	"github.com/aristath/ecoledger/internal/sources/rest"
	"github.com/aristath/ecoledger/internal/sources/sqlstore"
	"github.com/aristath/ecoledger/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	// Record decoding logs through the global logger
	logger.SetGlobalLogger(log)

	log.Info().
		Str("source", string(cfg.Source)).
		Int("port", cfg.Port).
		Msg("Starting ecoledger analytics")

	source, calculator, closeSource, err := openSource(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record source")
	}
	defer closeSource()

	m := metrics.New(prometheus.DefaultRegisterer)
	bus := events.NewBus(log)

	chartService := charts.NewService(source, calculator, cfg.FetchTimeout, m, log)
	chartService.SetEventBus(bus)

	srv := server.New(server.Config{
		Log:     log,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Source:  source,
		Charts:  chartService,
		Bus:     bus,
		Metrics: m,
	})

	// Scheduled refresh publishes dashboard and alert events for stream clients.
	// The job is registered with the server even when unscheduled so it can be
	// triggered manually.
	refreshJob := scheduler.NewRefreshJob(chartService, bus, m, 4*cfg.FetchTimeout, log)
	srv.SetRefreshJob(refreshJob)

	var sched *scheduler.Scheduler
	if cfg.RefreshSchedule != "" {
		sched = scheduler.New(log)
		if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
		sched.Start()
	} else {
		log.Info().Msg("Scheduled refresh disabled")
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop the scheduler first so no refresh starts during shutdown
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// openSource builds the configured record source. The returned func releases
// any resources the source holds.
func openSource(cfg *config.Config, log zerolog.Logger) (sources.Source, sources.RateCalculator, func(), error) {
	switch cfg.Source {
	case config.SourceREST:
		client := rest.NewClient(cfg.BackendURL, cfg.LoanFetchLimit, log)
		log.Info().Str("backend_url", cfg.BackendURL).Msg("Using backend REST API")
		return client, client, func() {}, nil

	case config.SourceSQLite, config.SourcePostgres:
		db, err := database.New(database.Config{
			Driver:  database.Driver(cfg.Source),
			DSN:     cfg.DatabaseURL,
			Profile: database.ProfileReadOnly,
			Name:    "ecoledger",
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}
		// Rate calculation writes to the backend, so SQL sources do not offer it
		return sqlstore.NewStore(db, cfg.LoanFetchLimit, log), nil, closeDB, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
