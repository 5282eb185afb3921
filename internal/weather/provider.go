package weather

import (
	"context"
)

// Source abstracts the upstream government measurement API.
// Implementations return errors wrapping ErrNetwork, ErrUpstream or ErrMalformedPayload.
type Source interface {
	Name() string
	FetchReadings(ctx context.Context, kind MeasurementKind) ([]StationReading, error)
	FetchForecast(ctx context.Context) ([]ForecastEntry, error)
}

// Store holds the most recent accepted report.
type Store interface {
	// SaveReport stores r unless a report with the same or a newer generation is already held.
	SaveReport(r Report) bool
	GetLatest() (Report, error)
}
