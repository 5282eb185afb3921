package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultFetchTimeout bounds each upstream fetch.
const DefaultFetchTimeout = 10 * time.Second

// AggregatorConfig carries the static settings of an Aggregator.
type AggregatorConfig struct {
	Preferred     PreferredStations
	Thresholds    Thresholds
	FetchTimeout  time.Duration
	LocationLabel string
	Location      *time.Location
}

// Aggregator turns upstream readings into current conditions and a forecast.
// Its Load methods never fail: every error path ends in offline data.
type Aggregator struct {
	source Source
	cfg    AggregatorConfig
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewAggregator creates a new Aggregator.
func NewAggregator(source Source, cfg AggregatorConfig, log logrus.FieldLogger) *Aggregator {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{
		source: source,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Thresholds returns the thresholds used for classification.
func (a *Aggregator) Thresholds() Thresholds {
	return a.cfg.Thresholds
}

type readingsResult struct {
	readings []StationReading
	err      error
}

type forecastResult struct {
	entries []ForecastEntry
	err     error
}

// LoadCurrent fetches all measurement kinds concurrently and builds a
// CurrentConditions. If any fetch fails the whole record is the offline one.
func (a *Aggregator) LoadCurrent(ctx context.Context) CurrentConditions {
	if a.source == nil {
		a.log.Error("no weather source configured; serving offline conditions")
		return a.offlineCurrent()
	}

	// One slot per kind; goroutines never share a slot.
	results := make([]readingsResult, len(MeasurementKinds))

	var wg sync.WaitGroup
	for i, kind := range MeasurementKinds {
		wg.Add(1)
		go func(i int, kind MeasurementKind) {
			defer wg.Done()
			results[i] = a.fetchReadings(ctx, kind)
		}(i, kind)
	}
	wg.Wait()

	failed := false
	for i, r := range results {
		if r.err != nil {
			failed = true
			a.log.WithFields(logrus.Fields{
				"kind":    MeasurementKinds[i],
				"failure": FailureKind(r.err),
			}).Warnf("measurement fetch failed: %v", r.err)
		}
	}
	if failed {
		return a.offlineCurrent()
	}

	set := make(MeasurementSet, len(MeasurementKinds))
	for i, kind := range MeasurementKinds {
		set[kind] = results[i].readings
	}
	return a.buildCurrent(set)
}

func (a *Aggregator) buildCurrent(set MeasurementSet) CurrentConditions {
	values := make(map[MeasurementKind]float64, len(MeasurementKinds))
	stations := make(map[MeasurementKind]string, len(MeasurementKinds))

	for _, kind := range MeasurementKinds {
		v, station, err := ResolveOrDefault(kind, set[kind], a.cfg.Preferred)
		if err != nil {
			a.log.WithField("kind", kind).Warnf("no station reported a value; using default %.1f", v)
		}
		values[kind] = v
		stations[kind] = station
	}

	temp := values[KindTemperature]
	humidity := values[KindHumidity]
	wind := values[KindWindSpeed]

	c := CurrentConditions{
		Temperature:     temp,
		Humidity:        humidity,
		WindSpeed:       wind,
		WindDirection:   compass(values[KindWindDirection]),
		UVIndex:         values[KindUVIndex],
		ConditionSymbol: currentSymbol(temp, humidity, wind),
		Description:     currentDescription(temp, humidity, wind),
		LocationLabel:   a.cfg.LocationLabel,
		ObservedAt:      a.now().In(a.cfg.Location),
		Stations:        stations,
	}

	assessment := Classify(SuitabilityInput{
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		UVIndex:     c.UVIndex,
	}, a.cfg.Thresholds)
	c.Suitability = assessment.Level
	c.SuitabilityNote = assessment.Note

	return c
}

// LoadForecast fetches the multi-day forecast. Any failure yields the fixed
// seven-day fallback.
func (a *Aggregator) LoadForecast(ctx context.Context) []ForecastDay {
	if a.source == nil {
		a.log.Error("no weather source configured; serving offline forecast")
		return OfflineForecast(a.now().In(a.cfg.Location), a.cfg.Thresholds)
	}

	res := a.fetchForecast(ctx)
	if res.err == nil && len(res.entries) == 0 {
		res.err = &FetchError{Op: "forecast", Err: fmt.Errorf("%w: no forecast entries", ErrMalformedPayload)}
	}
	if res.err != nil {
		a.log.WithField("failure", FailureKind(res.err)).Warnf("forecast fetch failed: %v", res.err)
		return OfflineForecast(a.now().In(a.cfg.Location), a.cfg.Thresholds)
	}

	days := make([]ForecastDay, 0, len(res.entries))
	for i, e := range res.entries {
		date := e.Date
		days = append(days, newForecastDay(dayLabel(i, date), &date, e, a.cfg.Thresholds))
	}
	return days
}

// newForecastDay derives display fields and suitability for one forecast entry.
func newForecastDay(label string, date *time.Time, e ForecastEntry, th Thresholds) ForecastDay {
	// Forecast payloads carry no UV, so the UV rule cannot fire for forecast days.
	in := SuitabilityInput{
		Temperature:  e.TemperatureHigh,
		Humidity:     MeasurementDefaults[KindHumidity],
		ForecastText: e.ForecastText,
	}
	if e.RelativeHumidity != nil {
		in.Humidity = e.RelativeHumidity.High
	}
	if e.WindSpeedKmh != nil {
		in.WindSpeed = e.WindSpeedKmh.High
	}
	assessment := Classify(in, th)

	return ForecastDay{
		Label:           label,
		Date:            date,
		TemperatureHigh: e.TemperatureHigh,
		TemperatureLow:  e.TemperatureLow,
		ConditionText:   e.ForecastText,
		ConditionSymbol: forecastSymbol(e.ForecastText),
		WindSummary:     windSummary(e.WindSpeedKmh, e.WindDirection),
		HumiditySummary: humiditySummary(e.RelativeHumidity),
		Suitability:     assessment.Level,
		SuitabilityNote: assessment.Note,
	}
}

// Load runs both loads concurrently and combines them once both complete.
func (a *Aggregator) Load(ctx context.Context) Report {
	var (
		wg       sync.WaitGroup
		current  CurrentConditions
		forecast []ForecastDay
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current = a.LoadCurrent(ctx)
	}()
	go func() {
		defer wg.Done()
		forecast = a.LoadForecast(ctx)
	}()
	wg.Wait()

	return Report{Current: current, Forecast: forecast}
}

func (a *Aggregator) offlineCurrent() CurrentConditions {
	return OfflineConditions(a.cfg.LocationLabel, a.now().In(a.cfg.Location), a.cfg.Thresholds)
}

// fetchReadings calls the source under a per-fetch timeout. The select makes
// the deadline hold even if a source ignores its context.
func (a *Aggregator) fetchReadings(ctx context.Context, kind MeasurementKind) readingsResult {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	ch := make(chan readingsResult, 1)
	go func() {
		readings, err := a.source.FetchReadings(ctx, kind)
		ch <- readingsResult{readings: readings, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			r.err = &FetchError{Op: string(kind), Err: r.err}
		}
		return r
	case <-ctx.Done():
		return readingsResult{err: &FetchError{Op: string(kind), Err: fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())}}
	}
}

func (a *Aggregator) fetchForecast(ctx context.Context) forecastResult {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	ch := make(chan forecastResult, 1)
	go func() {
		entries, err := a.source.FetchForecast(ctx)
		ch <- forecastResult{entries: entries, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			r.err = &FetchError{Op: "forecast", Err: r.err}
		}
		return r
	case <-ctx.Done():
		return forecastResult{err: &FetchError{Op: "forecast", Err: fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())}}
	}
}
