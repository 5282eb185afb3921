package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreKeepsNewestGeneration(t *testing.T) {
	s := NewMemoryStore()

	assert.True(t, s.SaveReport(weather.Report{Generation: 2, CycleID: "b"}))
	assert.False(t, s.SaveReport(weather.Report{Generation: 1, CycleID: "a"}))
	assert.False(t, s.SaveReport(weather.Report{Generation: 2, CycleID: "b-again"}))

	r, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "b", r.CycleID)

	assert.True(t, s.SaveReport(weather.Report{Generation: 3, CycleID: "c"}))
	r, err = s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "c", r.CycleID)
}
