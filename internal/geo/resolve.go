// Package geo resolves a configured city into coordinates at startup.
package geo

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// ErrNoAddress is returned when there is nothing to geocode.
var ErrNoAddress = errors.New("geo: empty address")

// Query is the address part of the configuration.
type Query struct {
	City    string
	State   string
	Country string
}

// Lookup turns an address into coordinates.
type Lookup func(addr geocoder.Address) (geocoder.Location, error)

// geocoder keeps its key in a package variable.
var keyMu sync.Mutex

// GoogleLookup returns a Lookup backed by kelvins/geocoder with the given API key.
func GoogleLookup(apiKey string) Lookup {
	return func(addr geocoder.Address) (geocoder.Location, error) {
		keyMu.Lock()
		defer keyMu.Unlock()
		geocoder.ApiKey = apiKey
		return geocoder.Geocoding(addr)
	}
}

// Resolver fills a Location's coordinates from an address.
type Resolver struct {
	lookup Lookup
	logger *slog.Logger
}

func NewResolver(lookup Lookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{lookup: lookup, logger: logger.With("component", "geo")}
}

// Resolve geocodes q and returns fallback with the coordinates replaced.
func (r *Resolver) Resolve(q Query, fallback weather.Location) (weather.Location, error) {
	if q.City == "" {
		return fallback, ErrNoAddress
	}

	loc, err := r.lookup(geocoder.Address{
		City:    q.City,
		State:   q.State,
		Country: q.Country,
	})
	if err != nil {
		return fallback, fmt.Errorf("geocode %q: %w", q.City, err)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return fallback, fmt.Errorf("geocode %q: coordinates out of range (%f, %f)", q.City, loc.Latitude, loc.Longitude)
	}

	resolved := fallback
	resolved.Latitude = loc.Latitude
	resolved.Longitude = loc.Longitude
	resolved.Label = q.City
	return resolved, nil
}

// ResolveOrFallback is Resolve with failures logged and swallowed.
func (r *Resolver) ResolveOrFallback(q Query, fallback weather.Location) weather.Location {
	loc, err := r.Resolve(q, fallback)
	if err != nil {
		r.logger.Warn("location lookup failed, using configured coordinates",
			"city", q.City,
			"latitude", fallback.Latitude,
			"longitude", fallback.Longitude,
			"error", err,
		)
		return fallback
	}
	r.logger.Info("location resolved",
		"city", q.City,
		"latitude", loc.Latitude,
		"longitude", loc.Longitude,
	)
	return loc
}
