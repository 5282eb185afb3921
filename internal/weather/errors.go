package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers unreachable upstreams and timeouts.
	ErrNetwork = errors.New("network failure")
	// ErrUpstream is returned for non-success HTTP statuses.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformedPayload is returned when a payload is missing expected fields.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNoStationData means every reading for a kind was null or absent.
	ErrNoStationData = errors.New("no station data")
)

// FetchError tags a failure with the fetch that produced it.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FailureKind reports which taxonomy bucket err falls into, or "unknown".
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, ErrNoStationData):
		return "no_station_data"
	default:
		return "unknown"
	}
}
