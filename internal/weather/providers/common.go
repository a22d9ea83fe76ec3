package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// maxBodyBytes caps how much of an upstream body we buffer.
const maxBodyBytes = 8 << 20

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
	errNoHTTPClient     = errors.New("http client not configured")
)

// statusError carries the upstream status out of the circuit breaker.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d", errUnexpectedStatus, e.code)
}

func (e *statusError) Unwrap() error {
	return errUnexpectedStatus
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(dailySeriesShape, weather.DailySeries{})
	v.RegisterStructValidation(hourlySeriesShape, weather.HourlySeries{})
	return v
}

// dailySeriesShape enforces the equal-length invariant of a daily block.
func dailySeriesShape(sl validator.StructLevel) {
	s := sl.Current().Interface().(weather.DailySeries)
	n := len(s.Time)
	if len(s.PrecipitationSum) != n {
		sl.ReportError(s.PrecipitationSum, "PrecipitationSum", "precipitation_sum", "eqlen", "time")
	}
	if len(s.TemperatureMax) != n {
		sl.ReportError(s.TemperatureMax, "TemperatureMax", "temperature_2m_max", "eqlen", "time")
	}
	if len(s.TemperatureMin) != n {
		sl.ReportError(s.TemperatureMin, "TemperatureMin", "temperature_2m_min", "eqlen", "time")
	}
}

func hourlySeriesShape(sl validator.StructLevel) {
	s := sl.Current().Interface().(weather.HourlySeries)
	n := len(s.Time)
	if len(s.Precipitation) != n {
		sl.ReportError(s.Precipitation, "Precipitation", "precipitation", "eqlen", "time")
	}
	if len(s.Temperature) != n {
		sl.ReportError(s.Temperature, "Temperature", "temperature_2m", "eqlen", "time")
	}
}

// checkShape validates a decoded block and converts failures into a MalformedResponseError.
func checkShape(op, block string, v any) error {
	if err := validate.Struct(v); err != nil {
		return &weather.MalformedResponseError{Op: op, Block: block, Reason: err.Error()}
	}
	return nil
}

// doRequest executes a single request through the circuit breaker and returns
// the body of a 2xx response. There are no retries: any failure is final.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	op string,
	buildRequest func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	if client == nil {
		return nil, &weather.UpstreamFetchError{Op: op, Err: errNoHTTPClient}
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, &weather.UpstreamFetchError{Op: op, Err: err}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			return nil, &statusError{code: resp.StatusCode}
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, fmt.Errorf("read body: %w", readErr)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.UpstreamFetchError{Op: op, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		}
		var se *statusError
		if errors.As(err, &se) {
			return nil, &weather.UpstreamFetchError{Op: op, StatusCode: se.code, Err: errUnexpectedStatus}
		}
		return nil, &weather.UpstreamFetchError{Op: op, Err: err}
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, &weather.UpstreamFetchError{Op: op, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return body, nil
}
