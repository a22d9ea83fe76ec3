package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ServiceConfig fixes what the service asks the provider for.
type ServiceConfig struct {
	Location           Location
	History            HistoryWindow
	HourlyForecastDays int
	DailyForecastDays  int
}

// Service is the stateless proxy core: every call maps to fresh upstream requests.
type Service struct {
	provider Provider
	cfg      ServiceConfig
	tz       *time.Location
	logger   *slog.Logger

	now func() time.Time
}

// NewService creates a new Service. The location timezone must be loadable.
func NewService(provider Provider, cfg ServiceConfig, logger *slog.Logger) (*Service, error) {
	tz, err := time.LoadLocation(cfg.Location.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Location.Timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HourlyForecastDays <= 0 {
		cfg.HourlyForecastDays = 3
	}
	if cfg.DailyForecastDays <= 0 {
		cfg.DailyForecastDays = 7
	}

	return &Service{
		provider: provider,
		cfg:      cfg,
		tz:       tz,
		logger:   logger.With("component", "weather-service"),
		now:      time.Now,
	}, nil
}

// Location returns the tracked location.
func (s *Service) Location() Location {
	return s.cfg.Location
}

// GetHistoricalAndForecast fetches the archive window and the hourly forecast in
// parallel. If either call fails the whole result fails.
func (s *Service) GetHistoricalAndForecast(ctx context.Context) (ClimateData, error) {
	if s.provider == nil {
		return ClimateData{}, ErrNoProvider
	}

	start, end, err := s.cfg.History.Range(s.now(), s.tz)
	if err != nil {
		return ClimateData{}, err
	}

	s.logger.Debug("fetching historical and forecast data",
		"provider", s.provider.Name(),
		"start", start,
		"end", end,
		"forecastDays", s.cfg.HourlyForecastDays,
	)

	var data ClimateData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		daily, err := s.provider.FetchDailyArchive(gctx, s.cfg.Location, start, end)
		if err != nil {
			return fmt.Errorf("historical window %s..%s: %w", start, end, err)
		}
		data.Historical = daily
		return nil
	})
	g.Go(func() error {
		hourly, err := s.provider.FetchHourlyForecast(gctx, s.cfg.Location, s.cfg.HourlyForecastDays)
		if err != nil {
			return fmt.Errorf("hourly forecast: %w", err)
		}
		data.Forecast = hourly
		return nil
	})
	if err := g.Wait(); err != nil {
		return ClimateData{}, err
	}

	return data, nil
}

// GetCurrent returns the current snapshot, or nil if the provider omitted it.
func (s *Service) GetCurrent(ctx context.Context) (*CurrentConditions, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	current, err := s.provider.FetchCurrent(ctx, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("current conditions: %w", err)
	}
	if current == nil {
		s.logger.Warn("provider returned no current_weather block", "provider", s.provider.Name())
	}
	return current, nil
}

// GetForecastOnly returns the forward-looking daily series.
func (s *Service) GetForecastOnly(ctx context.Context) (DailySeries, error) {
	if s.provider == nil {
		return DailySeries{}, ErrNoProvider
	}
	daily, err := s.provider.FetchDailyForecast(ctx, s.cfg.Location, s.cfg.DailyForecastDays)
	if err != nil {
		return DailySeries{}, fmt.Errorf("daily forecast: %w", err)
	}
	return daily, nil
}
