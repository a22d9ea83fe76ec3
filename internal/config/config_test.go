package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("expected port 3001, got %s", cfg.Port)
	}
	if cfg.ProxyURL != "http://localhost:3001" {
		t.Errorf("expected proxy url to follow the proxy port, got %s", cfg.ProxyURL)
	}
	if cfg.Location.Latitude != -23.55052 || cfg.Location.Longitude != -46.633308 {
		t.Errorf("unexpected default coordinates: %+v", cfg.Location.Coordinates)
	}
	if cfg.Location.Timezone != "America/Sao_Paulo" {
		t.Errorf("unexpected timezone %s", cfg.Location.Timezone)
	}
	if cfg.History.StartDaysAgo != 90 || cfg.History.EndDaysAgo != 0 {
		t.Errorf("expected 90..0 history window, got %+v", cfg.History)
	}
	if cfg.PollInterval != 60*time.Second {
		t.Errorf("expected 60s poll interval, got %s", cfg.PollInterval)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("expected no explicit timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.Thresholds.HeavyRainMM != 20 || cfg.Thresholds.HighMaxTempC != 35 || cfg.Thresholds.LowMinTempC != 5 {
		t.Errorf("unexpected default thresholds: %+v", cfg.Thresholds)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %s", cfg.LogLevel)
	}
	if cfg.HasGeocoding() {
		t.Error("geocoding should be off without an api key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "4001")
	t.Setenv("PROXY_URL", "http://proxy.internal:4001/")
	t.Setenv("HISTORY_START_DAYS_AGO", "10")
	t.Setenv("HISTORY_END_DAYS_AGO", "3")
	t.Setenv("THRESHOLD_HEAVY_RAIN_MM", "30")
	t.Setenv("POLL_INTERVAL", "2m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEOCODER_API_KEY", "key")
	t.Setenv("LOCATION_CITY", "Campinas")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "4001" {
		t.Errorf("expected port 4001, got %s", cfg.Port)
	}
	if cfg.ProxyURL != "http://proxy.internal:4001" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.ProxyURL)
	}
	if cfg.History.StartDaysAgo != 10 || cfg.History.EndDaysAgo != 3 {
		t.Errorf("expected 10..3 window, got %+v", cfg.History)
	}
	if cfg.Thresholds.HeavyRainMM != 30 {
		t.Errorf("expected heavy rain 30, got %v", cfg.Thresholds.HeavyRainMM)
	}
	if cfg.PollInterval != 2*time.Minute {
		t.Errorf("expected 2m, got %s", cfg.PollInterval)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
	if !cfg.HasGeocoding() {
		t.Error("expected geocoding to be enabled")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "latitude out of range", env: map[string]string{"LATITUDE": "91"}},
		{name: "latitude not a number", env: map[string]string{"LATITUDE": "south"}},
		{name: "window end before start", env: map[string]string{"HISTORY_START_DAYS_AGO": "3", "HISTORY_END_DAYS_AGO": "10"}},
		{name: "bad duration", env: map[string]string{"POLL_INTERVAL": "often"}},
		{name: "poll interval too short", env: map[string]string{"POLL_INTERVAL": "10ms"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "unknown app env", env: map[string]string{"APP_ENV": "staging"}},
		{name: "thresholds crossed", env: map[string]string{"THRESHOLD_LOW_MIN_TEMP_C": "40"}},
		{name: "too many forecast days", env: map[string]string{"DAILY_FORECAST_DAYS": "30"}},
		{name: "history start not a number", env: map[string]string{"HISTORY_START_DAYS_AGO": "abc"}},
		{name: "hourly days not a number", env: map[string]string{"HOURLY_FORECAST_DAYS": "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}

func TestLoad_InvalidIntegerNamesKey(t *testing.T) {
	t.Setenv("HISTORY_START_DAYS_AGO", "abc")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "HISTORY_START_DAYS_AGO") {
		t.Fatalf("expected error to name HISTORY_START_DAYS_AGO, got %v", err)
	}
}
