package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/gustavopmaia/gs-andre/internal/extremes"
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

type AppConfig struct {
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level

	// Port is where the weather proxy listens.
	Port string `validate:"required,numeric"`
	// DashboardPort is where the dashboard listens.
	DashboardPort string `validate:"required,numeric"`
	// ProxyURL is the base URL the dashboard uses to reach the proxy.
	ProxyURL string `validate:"required,url"`

	// The single tracked location.
	Location weather.Location

	// Optional address resolved to coordinates at startup when GeocoderAPIKey is set.
	LocationCity    string
	LocationState   string
	LocationCountry string
	GeocoderAPIKey  string

	ForecastURL string `validate:"required,url"`
	ArchiveURL  string `validate:"required,url"`

	History            weather.HistoryWindow
	HourlyForecastDays int `validate:"gte=1,lte=16"`
	DailyForecastDays  int `validate:"gte=1,lte=16"`

	// PollInterval controls how often the dashboard refreshes current conditions.
	PollInterval time.Duration `validate:"gte=1s"`
	// HTTPTimeout for outbound calls; 0 keeps the transport default.
	HTTPTimeout time.Duration `validate:"gte=0s"`

	Thresholds extremes.Thresholds
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found or error loading it", "error", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "3001")
	cfg.DashboardPort = getenvDefault("DASHBOARD_PORT", "3000")
	cfg.ProxyURL = strings.TrimRight(getenvDefault("PROXY_URL", "http://localhost:"+cfg.Port), "/")

	lat, err := getenvFloat("LATITUDE", -23.55052)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("LONGITUDE", -46.633308)
	if err != nil {
		return nil, err
	}
	cfg.Location = weather.Location{
		Coordinates: weather.Coordinates{Latitude: lat, Longitude: lon},
		Timezone:    getenvDefault("TIMEZONE", "America/Sao_Paulo"),
		Label:       getenvDefault("LOCATION_LABEL", "São Paulo"),
	}

	cfg.LocationCity = os.Getenv("LOCATION_CITY")
	cfg.LocationState = os.Getenv("LOCATION_STATE")
	cfg.LocationCountry = os.Getenv("LOCATION_COUNTRY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.ForecastURL = getenvDefault("OPEN_METEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.ArchiveURL = getenvDefault("OPEN_METEO_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive")

	// Default window: the last 90 days ending today. 10/3 gives the shorter
	// "10 days ago to 3 days ago" window.
	if cfg.History.StartDaysAgo, err = getenvInt("HISTORY_START_DAYS_AGO", weather.DefaultHistoryWindow.StartDaysAgo); err != nil {
		return nil, err
	}
	if cfg.History.EndDaysAgo, err = getenvInt("HISTORY_END_DAYS_AGO", weather.DefaultHistoryWindow.EndDaysAgo); err != nil {
		return nil, err
	}
	if cfg.HourlyForecastDays, err = getenvInt("HOURLY_FORECAST_DAYS", 3); err != nil {
		return nil, err
	}
	if cfg.DailyForecastDays, err = getenvInt("DAILY_FORECAST_DAYS", 7); err != nil {
		return nil, err
	}

	if cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", "60s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}

	defaults := extremes.DefaultThresholds()
	if cfg.Thresholds.HeavyRainMM, err = getenvFloat("THRESHOLD_HEAVY_RAIN_MM", defaults.HeavyRainMM); err != nil {
		return nil, err
	}
	if cfg.Thresholds.HighMaxTempC, err = getenvFloat("THRESHOLD_HIGH_MAX_TEMP_C", defaults.HighMaxTempC); err != nil {
		return nil, err
	}
	if cfg.Thresholds.LowMinTempC, err = getenvFloat("THRESHOLD_LOW_MIN_TEMP_C", defaults.LowMinTempC); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// HasGeocoding reports whether the location should be resolved by address.
func (c *AppConfig) HasGeocoding() bool {
	return c.GeocoderAPIKey != "" && c.LocationCity != ""
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
