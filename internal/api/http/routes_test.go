package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

type stubService struct {
	report    weather.Report
	refreshes int
}

func (s *stubService) Refresh(ctx context.Context) (weather.Report, bool) {
	s.refreshes++
	s.report.Generation++
	return s.report, true
}

func (s *stubService) LatestOrRefresh(ctx context.Context) weather.Report {
	return s.report
}

func newTestApp(svc WeatherService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, svc, weather.DefaultThresholds(), time.Second)
	return app
}

func TestSuitabilityEndpoint(t *testing.T) {
	app := newTestApp(&stubService{})

	cases := []struct {
		name   string
		query  string
		status int
		level  weather.SuitabilityLevel
	}{
		{name: "perfect", query: "temperature=28&humidity=70&windSpeed=10&uvIndex=6", status: http.StatusOK, level: weather.SuitabilityPerfect},
		{name: "thunder", query: "temperature=26&humidity=70&windSpeed=10&forecast=Thundery%20Showers", status: http.StatusOK, level: weather.SuitabilityPoor},
		{name: "humid", query: "temperature=27&humidity=92&windSpeed=5", status: http.StatusOK, level: weather.SuitabilityOkay},
		{name: "missing temperature", query: "humidity=70&windSpeed=10", status: http.StatusBadRequest},
		{name: "not a number", query: "temperature=hot&humidity=70&windSpeed=10", status: http.StatusBadRequest},
		{name: "humidity out of range", query: "temperature=28&humidity=170&windSpeed=10", status: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/suitability?"+tc.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tc.status, resp.StatusCode)
			if tc.status != http.StatusOK {
				return
			}

			var got weather.Assessment
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tc.level, got.Level)
		})
	}
}

func TestCurrentEndpoint(t *testing.T) {
	svc := &stubService{report: weather.Report{
		Generation: 4,
		Current:    weather.OfflineConditions("Singapore", time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC), weather.DefaultThresholds()),
		Forecast:   weather.OfflineForecast(time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC), weather.DefaultThresholds()),
	}}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/current", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var current weather.CurrentConditions
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&current))
	assert.True(t, current.IsOffline)
	assert.Equal(t, "Singapore (offline)", current.LocationLabel)
}

func TestForecastEndpoint(t *testing.T) {
	svc := &stubService{report: weather.Report{
		Generation: 2,
		Forecast:   weather.OfflineForecast(time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC), weather.DefaultThresholds()),
	}}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Generation uint64                `json:"generation"`
		Days       []weather.ForecastDay `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint64(2), body.Generation)
	require.Len(t, body.Days, 7)
	assert.Equal(t, "Today", body.Days[0].Label)
}

func TestRefreshEndpoint(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/weather/refresh", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Accepted bool           `json:"accepted"`
		Report   weather.Report `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Accepted)
	assert.Equal(t, uint64(1), body.Report.Generation)
	assert.Equal(t, 1, svc.refreshes)
}
