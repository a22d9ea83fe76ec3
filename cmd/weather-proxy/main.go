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
	"github.com/gustavopmaia/gs-andre/internal/geo"
	"github.com/gustavopmaia/gs-andre/internal/logging"
	"github.com/gustavopmaia/gs-andre/internal/weather"
	"github.com/gustavopmaia/gs-andre/internal/weather/providers"
)

const appName = "weather-proxy"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg, appName)
	slog.SetDefault(logger)

	location := cfg.Location
	if cfg.HasGeocoding() {
		resolver := geo.NewResolver(geo.GoogleLookup(cfg.GeocoderAPIKey), logger)
		location = resolver.ResolveOrFallback(geo.Query{
			City:    cfg.LocationCity,
			State:   cfg.LocationState,
			Country: cfg.LocationCountry,
		}, cfg.Location)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenMeteoProvider(httpClient, providers.OpenMeteoConfig{
		ForecastURL: cfg.ForecastURL,
		ArchiveURL:  cfg.ArchiveURL,
	})

	service, err := weather.NewService(provider, weather.ServiceConfig{
		Location:           location,
		History:            cfg.History,
		HourlyForecastDays: cfg.HourlyForecastDays,
		DailyForecastDays:  cfg.DailyForecastDays,
	}, logger)
	if err != nil {
		logger.Error("failed to create weather service", "error", err)
		os.Exit(1)
	}

	app := httpapi.NewApp(appName)
	httpapi.RegisterRoutes(app, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port, "latitude", location.Latitude, "longitude", location.Longitude)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
