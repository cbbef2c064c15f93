package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/plant-weather/internal/api/http"
	"github.com/i474232898/plant-weather/internal/config"
	"github.com/i474232898/plant-weather/internal/logging"
	"github.com/i474232898/plant-weather/internal/observability"
	"github.com/i474232898/plant-weather/internal/scheduler"
	"github.com/i474232898/plant-weather/internal/store"
	"github.com/i474232898/plant-weather/internal/weather"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Serve the HTTP API and refresh watched locations in the background",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	metrics := observability.NewMetrics()

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	provider := newProvider(cfg).WithLatency(metrics.ProviderDuration)
	service := weather.NewService(provider, memStore,
		weather.WithTimeout(cfg.HTTPTimeout),
		weather.WithObserver(metrics),
		weather.WithLogger(logging.Component("service")),
	)

	// Scheduler that periodically fetches and stores reports.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service, log.Logger, metrics.SchedulerRuns.Inc)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("locations", len(cfg.Locations)).Msg("starting server")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("fiber server stopped: %w", err)
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
