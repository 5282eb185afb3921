package weather_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/cleanup-weather/internal/store"
	"github.com/i474232898/cleanup-weather/internal/weather"
)

// gatedLoader returns reports tagged by call order; calls listed in gates wait
// until their gate is closed.
type gatedLoader struct {
	mu      sync.Mutex
	calls   int
	gates   map[int]chan struct{}
	started chan int
}

func (l *gatedLoader) Load(ctx context.Context) weather.Report {
	l.mu.Lock()
	l.calls++
	n := l.calls
	gate := l.gates[n]
	l.mu.Unlock()

	if l.started != nil {
		l.started <- n
	}
	if gate != nil {
		<-gate
	}
	return weather.Report{Current: weather.CurrentConditions{Temperature: float64(n)}}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRefreshStoresReport(t *testing.T) {
	svc := weather.NewService(&gatedLoader{}, store.NewMemoryStore(), quietLogger())

	_, err := svc.Latest()
	assert.ErrorIs(t, err, weather.ErrNoReport)

	r, accepted := svc.Refresh(context.Background())
	assert.True(t, accepted)
	assert.Equal(t, uint64(1), r.Generation)
	assert.NotEmpty(t, r.CycleID)

	latest, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, r, latest)
}

func TestRefreshDiscardsStaleCycle(t *testing.T) {
	slow := make(chan struct{})
	loader := &gatedLoader{
		gates:   map[int]chan struct{}{1: slow},
		started: make(chan int, 2),
	}
	svc := weather.NewService(loader, store.NewMemoryStore(), quietLogger())

	type result struct {
		report   weather.Report
		accepted bool
	}
	first := make(chan result, 1)
	go func() {
		r, ok := svc.Refresh(context.Background())
		first <- result{r, ok}
	}()
	require.Equal(t, 1, <-loader.started)

	// Second cycle starts later and completes first.
	second, accepted := svc.Refresh(context.Background())
	require.Equal(t, 2, <-loader.started)
	assert.True(t, accepted)
	assert.Equal(t, uint64(2), second.Generation)

	close(slow)
	stale := <-first
	assert.False(t, stale.accepted)
	assert.Equal(t, uint64(1), stale.report.Generation)

	latest, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.Generation)
	assert.Equal(t, 2.0, latest.Current.Temperature)
}

func TestLatestOrRefresh(t *testing.T) {
	loader := &gatedLoader{}
	svc := weather.NewService(loader, store.NewMemoryStore(), quietLogger())

	r := svc.LatestOrRefresh(context.Background())
	assert.Equal(t, uint64(1), r.Generation)

	again := svc.LatestOrRefresh(context.Background())
	assert.Equal(t, r, again)
	assert.Equal(t, 1, loader.calls)
}
