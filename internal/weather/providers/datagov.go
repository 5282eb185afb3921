package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

const knotsToKmh = 1.852

// uvStationID labels UV index values, which are published nationally rather than per station.
const uvStationID = "national"

var dataGovEndpoints = map[weather.MeasurementKind]string{
	weather.KindTemperature:   "air-temperature",
	weather.KindHumidity:      "relative-humidity",
	weather.KindWindSpeed:     "wind-speed",
	weather.KindWindDirection: "wind-direction",
	weather.KindUVIndex:       "uv-index",
}

const dataGovForecastEndpoint = "4-day-weather-forecast"

// ErrUnsupportedKind is returned for a measurement kind with no endpoint.
// It signals a programming error, not an upstream failure.
var ErrUnsupportedKind = errors.New("unsupported measurement kind")

// DataGovSource implements weather.Source for the data.gov.sg environment API.
type DataGovSource struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	// One breaker per endpoint. A refresh cycle fetches every endpoint at
	// once, so a shared half-open breaker would reject part of the cycle.
	circuits map[string]*gobreaker.CircuitBreaker
}

// NewDataGovSource creates a source rooted at baseURL, e.g.
// https://api.data.gov.sg/v1/environment.
func NewDataGovSource(client *http.Client, baseURL string, maxRetries int) *DataGovSource {
	return newDataGovSource(client, baseURL, maxRetries, 2*time.Minute)
}

func newDataGovSource(client *http.Client, baseURL string, maxRetries int, openTimeout time.Duration) *DataGovSource {
	endpoints := make([]string, 0, len(dataGovEndpoints)+1)
	for _, e := range dataGovEndpoints {
		endpoints = append(endpoints, e)
	}
	endpoints = append(endpoints, dataGovForecastEndpoint)

	circuits := make(map[string]*gobreaker.CircuitBreaker, len(endpoints))
	for _, e := range endpoints {
		circuits[e] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "datagov/" + e,
			MaxRequests: 1,
			Interval:    1 * time.Minute,
			Timeout:     openTimeout,
		})
	}

	return &DataGovSource{
		name:    "datagov",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuits: circuits,
	}
}

func (p *DataGovSource) Name() string {
	return p.name
}

type readingsPayload struct {
	Metadata struct {
		ReadingUnit string `json:"reading_unit"`
	} `json:"metadata"`
	Items []struct {
		Timestamp string `json:"timestamp"`
		Readings  []struct {
			StationID string   `json:"station_id"`
			Value     *float64 `json:"value"`
		} `json:"readings"`
		// UV index has no stations; values are newest first.
		Index []struct {
			Value     *float64 `json:"value"`
			Timestamp string   `json:"timestamp"`
		} `json:"index"`
	} `json:"items"`
}

// FetchReadings returns the per-station readings for kind.
func (p *DataGovSource) FetchReadings(ctx context.Context, kind weather.MeasurementKind) ([]weather.StationReading, error) {
	endpoint, ok := dataGovEndpoints[kind]
	if !ok {
		return nil, fmt.Errorf("datagov: %w %q", ErrUnsupportedKind, kind)
	}

	var payload readingsPayload
	if err := p.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: %s payload has no items", weather.ErrMalformedPayload, endpoint)
	}
	item := payload.Items[0]

	if kind == weather.KindUVIndex {
		if item.Index == nil {
			return nil, fmt.Errorf("%w: %s payload has no index", weather.ErrMalformedPayload, endpoint)
		}
		readings := make([]weather.StationReading, 0, len(item.Index))
		for _, ix := range item.Index {
			readings = append(readings, weather.StationReading{StationID: uvStationID, Value: ix.Value})
		}
		return readings, nil
	}

	if item.Readings == nil {
		return nil, fmt.Errorf("%w: %s payload has no readings", weather.ErrMalformedPayload, endpoint)
	}

	convert := kind == weather.KindWindSpeed && strings.EqualFold(payload.Metadata.ReadingUnit, "knots")

	readings := make([]weather.StationReading, 0, len(item.Readings))
	for _, r := range item.Readings {
		v := r.Value
		if convert && v != nil {
			kmh := *v * knotsToKmh
			v = &kmh
		}
		readings = append(readings, weather.StationReading{StationID: r.StationID, Value: v})
	}
	return readings, nil
}

type rangePayload struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

func (r *rangePayload) toRange() *weather.Range {
	if r == nil || r.Low == nil || r.High == nil {
		return nil
	}
	return &weather.Range{Low: *r.Low, High: *r.High}
}

type forecastPayload struct {
	Items []struct {
		Forecasts []struct {
			Date             string        `json:"date"`
			Forecast         string        `json:"forecast"`
			Temperature      *rangePayload `json:"temperature"`
			RelativeHumidity *rangePayload `json:"relative_humidity"`
			Wind             *struct {
				Speed     *rangePayload `json:"speed"`
				Direction string        `json:"direction"`
			} `json:"wind"`
		} `json:"forecasts"`
	} `json:"items"`
}

// FetchForecast returns the multi-day forecast in chronological order.
func (p *DataGovSource) FetchForecast(ctx context.Context) ([]weather.ForecastEntry, error) {
	var payload forecastPayload
	if err := p.getJSON(ctx, dataGovForecastEndpoint, &payload); err != nil {
		return nil, err
	}

	if len(payload.Items) == 0 || len(payload.Items[0].Forecasts) == 0 {
		return nil, fmt.Errorf("%w: forecast payload has no forecasts", weather.ErrMalformedPayload)
	}

	raw := payload.Items[0].Forecasts
	entries := make([]weather.ForecastEntry, 0, len(raw))
	for i, f := range raw {
		date, err := time.Parse("2006-01-02", f.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: forecast %d: bad date %q", weather.ErrMalformedPayload, i, f.Date)
		}
		temp := f.Temperature.toRange()
		if temp == nil {
			return nil, fmt.Errorf("%w: forecast %d: missing temperature", weather.ErrMalformedPayload, i)
		}

		e := weather.ForecastEntry{
			Date:             date,
			TemperatureHigh:  temp.High,
			TemperatureLow:   temp.Low,
			ForecastText:     f.Forecast,
			RelativeHumidity: f.RelativeHumidity.toRange(),
		}
		if f.Wind != nil {
			e.WindSpeedKmh = f.Wind.Speed.toRange()
			e.WindDirection = f.Wind.Direction
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (p *DataGovSource) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s/%s", p.baseURL, endpoint)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuits[endpoint], buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", weather.ErrNetwork, err)
		}
		return fmt.Errorf("%w: %s: %v", weather.ErrMalformedPayload, endpoint, err)
	}
	return nil
}
