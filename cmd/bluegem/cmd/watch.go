package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/internal/config"
	"github.com/donaldgifford/csbluegem-go/internal/notify"
	"github.com/donaldgifford/csbluegem-go/internal/watch"
	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
	"github.com/donaldgifford/csbluegem-go/pkg/logger"
)

func watchCmd() *cobra.Command {
	var (
		once        bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for new sales on a schedule",
		Long: "Run the sale watcher: poll CSBlueGem on each configured watch's\n" +
			"schedule and send a Discord notification for every newly observed\n" +
			"sale. Watches are defined in a YAML config file; webhook URLs can\n" +
			"reference environment variables, loaded from .env if present.",
		Example: `  bluegem watch --config watch.yaml
  bluegem watch --config watch.yaml --once
  bluegem watch --config watch.yaml --metrics-addr :9090`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWatch(once, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run every watch once and exit")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address, overriding the config")

	return cmd
}

func runWatch(once bool, metricsAddr string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}

	// .env is optional; config values reference its variables via ${VAR}.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	currency, err := bluegem.ParseCurrency(cfg.Client.Currency)
	if err != nil {
		return err
	}

	opts := []bluegem.Option{
		bluegem.WithLogger(log),
		bluegem.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
	}
	if cfg.Client.BaseURL != "" {
		opts = append(opts, bluegem.WithBaseURL(cfg.Client.BaseURL))
	}
	if cfg.Client.UserAgent != "" {
		opts = append(opts, bluegem.WithUserAgent(cfg.Client.UserAgent))
	}
	if cfg.Client.RateLimit > 0 {
		opts = append(opts, bluegem.WithRateLimit(cfg.Client.RateLimit, cfg.Client.RateBurst))
	}
	client := bluegem.New(opts...)

	var notifier notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
		log.Info("discord notifications enabled")
	} else {
		notifier = notify.NewNoOpNotifier(log)
		log.Warn("no notification backend configured, new sales will only be logged")
	}

	watcher := watch.NewWatcher(client, notifier, cfg.Watches,
		watch.WithLogger(log),
		watch.WithCurrency(currency),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("received shutdown signal")
		cancel()
	}()

	if once {
		return watcher.RunAll(ctx)
	}

	sched, err := watch.NewScheduler(watcher, log)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = startMetricsServer(cfg.Metrics.Addr, log)
	}

	sched.Start()
	log.Info("watching for sales", "watches", len(cfg.Watches))

	<-ctx.Done()
	log.Info("shutting down")

	stopCtx := sched.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		log.Warn("timed out waiting for running watches")
	}

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down metrics server: %w", err)
		}
	}

	log.Info("stopped")
	return nil
}

func startMetricsServer(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "err", err)
		}
	}()

	return srv
}
