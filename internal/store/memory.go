package store

import (
	"errors"
	"sync"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no report has been stored yet.
	ErrNotFound = errors.New("no weather report stored")
)

// MemoryStore is a concurrency-safe holder for the latest weather report.
// Older reports are replaced, not kept.
type MemoryStore struct {
	mu sync.RWMutex

	latest *weather.Report
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveReport stores r if its generation is newer than the held one.
func (s *MemoryStore) SaveReport(r weather.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil && s.latest.Generation >= r.Generation {
		return false
	}
	s.latest = &r
	return true
}

// GetLatest returns the held report.
func (s *MemoryStore) GetLatest() (weather.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return weather.Report{}, ErrNotFound
	}
	return *s.latest, nil
}
