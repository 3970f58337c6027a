package cli

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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bookingcal/internal/app"
	"bookingcal/internal/booking"
	"bookingcal/internal/bot"
	"bookingcal/internal/config"
	"bookingcal/internal/metrics"
	"bookingcal/internal/scraper"
	"bookingcal/internal/storage"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			if err := cfg.RequireBotToken(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	log := newLogger(cfg, os.Stdout)
	log.WithFields(logrus.Fields{
		"badgerdb_path": cfg.BadgerDBPath,
		"timezone":      cfg.Timezone,
	}).Info("Configuration loaded successfully")

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	svc := app.NewService(app.Options{
		Scraper:     scraper.NewRodScraper(log, cfg.BrowserBin, cfg.Selectors.Ready, cfg.ReadyTimeout),
		Synthesizer: booking.NewSynthesizer(loc, cfg.EventDurationMinutes),
		Repo:        repo,
		Metrics:     m,
		Selectors:   cfg.Selectors,
		PendingTTL:  cfg.PendingTTL,
	}, log)

	botHandler, err := bot.NewHandler(cfg.TelegramBotToken, svc, log)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram bot handler: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsListen != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsListen,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.WithField("addr", cfg.MetricsListen).Info("Serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info("bookingcal is running. Press Ctrl+C to exit.")
	// Start blocks until ctx is cancelled.
	botHandler.Start(ctx)

	log.Info("Shutting down bookingcal...")
	return nil
}
