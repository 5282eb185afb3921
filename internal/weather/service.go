package weather

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// ErrNoReport is returned by Latest before the first accepted load cycle.
var ErrNoReport = errors.New("no weather report loaded yet")

// Loader produces one report per call.
type Loader interface {
	Load(ctx context.Context) Report
}

// Service runs load cycles and keeps the newest result.
type Service struct {
	loader Loader
	store  Store
	gen    *atomic.Uint64
	log    logrus.FieldLogger
}

// NewService creates a new Service.
func NewService(loader Loader, store Store, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		loader: loader,
		store:  store,
		gen:    atomic.NewUint64(0),
		log:    log,
	}
}

// Refresh runs one load cycle. The cycle takes its generation when it starts;
// the store only accepts it if nothing newer has landed in the meantime, so a
// slow cycle finishing late cannot overwrite a newer result.
func (s *Service) Refresh(ctx context.Context) (Report, bool) {
	gen := s.gen.Inc()
	cycle := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"generation": gen, "cycle": cycle})

	log.Debug("weather load cycle started")

	report := s.loader.Load(ctx)
	report.Generation = gen
	report.CycleID = cycle

	accepted := s.store.SaveReport(report)
	if !accepted {
		log.Info("discarding stale weather report; a newer cycle already completed")
	} else {
		log.WithFields(logrus.Fields{
			"offline":     report.Current.IsOffline,
			"suitability": report.Current.Suitability,
			"days":        len(report.Forecast),
		}).Info("weather report updated")
	}
	return report, accepted
}

// Latest returns the newest accepted report.
func (s *Service) Latest() (Report, error) {
	r, err := s.store.GetLatest()
	if err != nil {
		return Report{}, ErrNoReport
	}
	return r, nil
}

// LatestOrRefresh returns the newest report, running a cycle first if none exists.
func (s *Service) LatestOrRefresh(ctx context.Context) Report {
	if r, err := s.Latest(); err == nil {
		return r
	}
	r, accepted := s.Refresh(ctx)
	if !accepted {
		// A concurrent cycle won; serve what it stored.
		if latest, err := s.Latest(); err == nil {
			return latest
		}
	}
	return r
}
