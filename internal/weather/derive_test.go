package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForecastSymbol(t *testing.T) {
	cases := map[string]string{
		"Thundery Showers":          SymbolStorm,
		"Heavy Rain":                SymbolStorm,
		"Afternoon showers":         SymbolRain,
		"Light Rain":                SymbolRain,
		"Cloudy":                    SymbolCloud,
		"Overcast":                  SymbolCloud,
		"Partly Cloudy":             SymbolCloud,
		"Fair and Warm":             SymbolPartial,
		"Partly sunny":              SymbolPartial,
		"Hazy":                      SymbolHaze,
		"Mist":                      SymbolHaze,
		"Sunny":                     SymbolClear,
		"":                          SymbolClear,
		"THUNDERY SHOWERS IN WEST.": SymbolStorm,
	}

	for text, want := range cases {
		assert.Equal(t, want, forecastSymbol(text), text)
	}
}

func TestCurrentSymbolAndDescription(t *testing.T) {
	cases := []struct {
		temp, humidity, wind float64
		symbol, desc         string
	}{
		{26, 90, 5, SymbolRain, "Humid"},
		{30, 90, 5, SymbolOvercast, "Humid"},
		{34, 60, 5, SymbolHot, "Hot"},
		{28, 60, 25, SymbolWindy, "Windy"},
		{28, 60, 5, SymbolClear, "Pleasant"},
		{20, 60, 5, SymbolClear, "Cool"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.symbol, currentSymbol(tc.temp, tc.humidity, tc.wind))
		assert.Equal(t, tc.desc, currentDescription(tc.temp, tc.humidity, tc.wind))
	}
}

func TestDayLabel(t *testing.T) {
	// 2024-06-05 is a Wednesday.
	date := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", dayLabel(0, date))
	assert.Equal(t, "Tomorrow", dayLabel(1, date))
	assert.Equal(t, "Wednesday", dayLabel(2, date))
}

func TestCompass(t *testing.T) {
	cases := map[float64]string{
		0:   "N",
		20:  "N",
		23:  "NE",
		45:  "NE",
		180: "S",
		300: "NW",
		350: "N",
		360: "N",
		-90: "W",
	}
	for deg, want := range cases {
		assert.Equal(t, want, compass(deg), deg)
	}
}

func TestSummaries(t *testing.T) {
	assert.Equal(t, "10-20 km/h NE", windSummary(&Range{Low: 10, High: 20}, "NE"))
	assert.Equal(t, "10-20 km/h", windSummary(&Range{Low: 10, High: 20}, ""))
	assert.Equal(t, "NNE", windSummary(nil, "NNE"))
	assert.Equal(t, "Wind data unavailable", windSummary(nil, ""))

	h := humiditySummary(&Range{Low: 60, High: 95})
	if assert.NotNil(t, h) {
		assert.Equal(t, "60-95%", *h)
	}
	assert.Nil(t, humiditySummary(nil))
}
