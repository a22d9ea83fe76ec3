package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultArchiveURL  = "https://archive-api.open-meteo.com/v1/archive"
)

var (
	dailyVariables  = []string{"precipitation_sum", "temperature_2m_max", "temperature_2m_min"}
	hourlyVariables = []string{"precipitation", "temperature_2m"}
)

// OpenMeteoConfig points the provider at the forecast and archive endpoints.
// Empty fields fall back to the public Open-Meteo hosts.
type OpenMeteoConfig struct {
	ForecastURL string
	ArchiveURL  string
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Each upstream host has its own circuit breaker.
type OpenMeteoProvider struct {
	name            string
	forecastURL     string
	archiveURL      string
	client          *http.Client
	forecastCircuit *gobreaker.CircuitBreaker
	archiveCircuit  *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, cfg OpenMeteoConfig) *OpenMeteoProvider {
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = DefaultArchiveURL
	}

	return &OpenMeteoProvider{
		name:            "openmeteo",
		forecastURL:     cfg.ForecastURL,
		archiveURL:      cfg.ArchiveURL,
		client:          client,
		forecastCircuit: newCircuit("openmeteo-forecast"),
		archiveCircuit:  newCircuit("openmeteo-archive"),
	}
}

// newCircuit trips after more than five consecutive upstream failures.
// Cancellations and expired deadlines are not failures.
func newCircuit(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchDailyArchive(ctx context.Context, loc weather.Location, start, end string) (weather.DailySeries, error) {
	const op = "archive"

	values := baseValues(loc)
	values.Set("start_date", start)
	values.Set("end_date", end)
	values.Set("daily", strings.Join(dailyVariables, ","))

	var payload struct {
		Daily *weather.DailySeries `json:"daily"`
	}
	if err := p.getJSON(ctx, op, p.archiveURL, values, &payload); err != nil {
		return weather.DailySeries{}, err
	}
	if payload.Daily == nil {
		return weather.DailySeries{}, &weather.MalformedResponseError{Op: op, Block: "daily", Reason: "missing"}
	}
	if err := checkShape(op, "daily", *payload.Daily); err != nil {
		return weather.DailySeries{}, err
	}
	return *payload.Daily, nil
}

func (p *OpenMeteoProvider) FetchHourlyForecast(ctx context.Context, loc weather.Location, days int) (weather.HourlySeries, error) {
	const op = "hourly forecast"

	values := baseValues(loc)
	values.Set("hourly", strings.Join(hourlyVariables, ","))
	values.Set("forecast_days", strconv.Itoa(days))

	var payload struct {
		Hourly *weather.HourlySeries `json:"hourly"`
	}
	if err := p.getJSON(ctx, op, p.forecastURL, values, &payload); err != nil {
		return weather.HourlySeries{}, err
	}
	if payload.Hourly == nil {
		return weather.HourlySeries{}, &weather.MalformedResponseError{Op: op, Block: "hourly", Reason: "missing"}
	}
	if err := checkShape(op, "hourly", *payload.Hourly); err != nil {
		return weather.HourlySeries{}, err
	}
	return *payload.Hourly, nil
}

func (p *OpenMeteoProvider) FetchDailyForecast(ctx context.Context, loc weather.Location, days int) (weather.DailySeries, error) {
	const op = "daily forecast"

	values := baseValues(loc)
	values.Set("daily", strings.Join(dailyVariables, ","))
	values.Set("forecast_days", strconv.Itoa(days))

	var payload struct {
		Daily *weather.DailySeries `json:"daily"`
	}
	if err := p.getJSON(ctx, op, p.forecastURL, values, &payload); err != nil {
		return weather.DailySeries{}, err
	}
	if payload.Daily == nil {
		return weather.DailySeries{}, &weather.MalformedResponseError{Op: op, Block: "daily", Reason: "missing"}
	}
	if err := checkShape(op, "daily", *payload.Daily); err != nil {
		return weather.DailySeries{}, err
	}
	return *payload.Daily, nil
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, loc weather.Location) (*weather.CurrentConditions, error) {
	const op = "current"

	values := baseValues(loc)
	values.Set("current_weather", "true")
	// current_weather has no precipitation; ask for it through the newer block.
	values.Set("current", "precipitation")

	var payload struct {
		CurrentWeather *weather.CurrentConditions `json:"current_weather"`
		Current        *struct {
			Precipitation *float64 `json:"precipitation"`
		} `json:"current"`
	}
	if err := p.getJSON(ctx, op, p.forecastURL, values, &payload); err != nil {
		return nil, err
	}
	if payload.CurrentWeather == nil {
		return nil, nil
	}

	current := *payload.CurrentWeather
	if current.Precipitation == nil && payload.Current != nil {
		current.Precipitation = payload.Current.Precipitation
	}
	return &current, nil
}

func (p *OpenMeteoProvider) getJSON(ctx context.Context, op, baseURL string, values url.Values, out any) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	cb := p.forecastCircuit
	if baseURL == p.archiveURL {
		cb = p.archiveCircuit
	}

	body, err := doRequest(ctx, p.client, cb, op, buildRequest)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &weather.UpstreamFetchError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

func baseValues(loc weather.Location) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	if loc.Timezone != "" {
		values.Set("timezone", loc.Timezone)
	}
	return values
}
