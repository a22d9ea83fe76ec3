package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/gustavopmaia/gs-andre/internal/api/http"
	"github.com/gustavopmaia/gs-andre/internal/config"
	"github.com/gustavopmaia/gs-andre/internal/dashboard"
	"github.com/gustavopmaia/gs-andre/internal/dashboard/views"
	"github.com/gustavopmaia/gs-andre/internal/logging"
	"github.com/gustavopmaia/gs-andre/internal/scheduler"
	"github.com/gustavopmaia/gs-andre/internal/store"
)

const appName = "weather-dashboard"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg, appName)
	slog.SetDefault(logger)

	if err := views.LoadTemplates(); err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	client := dashboard.NewProxyClient(cfg.ProxyURL, &http.Client{Timeout: cfg.HTTPTimeout})

	// Readings older than three poll intervals are treated as unavailable.
	latest := store.NewLatestStore(3 * cfg.PollInterval)

	dash := dashboard.New(client, latest, dashboard.Config{
		Location:     cfg.Location,
		Thresholds:   cfg.Thresholds,
		PollInterval: cfg.PollInterval,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Single poller for current conditions; ticks never overlap.
	sched := scheduler.New("current-conditions", cfg.PollInterval, dash.RefreshCurrent,
		scheduler.WithLogger(logger),
	)
	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := httpapi.NewApp(appName)
	dash.Register(app)

	go func() {
		logger.Info("listening", "port", cfg.DashboardPort, "proxy", cfg.ProxyURL)
		if err := app.Listen(":" + cfg.DashboardPort); err != nil {
			logger.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
