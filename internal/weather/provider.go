package weather

import (
	"context"
)

// Provider abstracts the upstream weather data source (Open-Meteo).
// Every call is a single outbound request; implementations do not retry.
type Provider interface {
	Name() string

	// FetchDailyArchive returns the observed daily series for [start, end] (YYYY-MM-DD, inclusive).
	FetchDailyArchive(ctx context.Context, loc Location, start, end string) (DailySeries, error)

	// FetchHourlyForecast returns the hourly forecast for the next days.
	FetchHourlyForecast(ctx context.Context, loc Location, days int) (HourlySeries, error)

	// FetchDailyForecast returns the forward-looking daily series for the next days.
	FetchDailyForecast(ctx context.Context, loc Location, days int) (DailySeries, error)

	// FetchCurrent returns the current snapshot, or nil when the provider has none.
	FetchCurrent(ctx context.Context, loc Location) (*CurrentConditions, error)
}
