package weather

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when the service was built without an upstream provider.
var ErrNoProvider = errors.New("no weather provider configured")

// UpstreamFetchError reports a network failure, a non-2xx status or an
// undecodable body from the weather provider.
type UpstreamFetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a decodable body whose shape does not match
// the contract, e.g. a missing daily block or arrays of unequal length.
type MalformedResponseError struct {
	Op     string
	Block  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s block: %s", e.Op, e.Block, e.Reason)
}
