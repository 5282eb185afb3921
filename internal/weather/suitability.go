package weather

import (
	"strings"

	"github.com/i474232898/cleanup-weather/internal/common"
)

// Thresholds bound the suitability ladder. Units are °C, km/h, % and UV index.
type Thresholds struct {
	MaxTemperature       float64 `validate:"gtfield=MinTemperature"`
	MaxUV                float64 `validate:"gt=0"`
	MaxWind              float64 `validate:"gt=0"`
	MinTemperature       float64
	MaxHumidity          float64 `validate:"gt=0,lte=100"`
	PerfectTempLow       float64
	PerfectTempHigh      float64 `validate:"gtefield=PerfectTempLow"`
	PerfectWindBelow     float64 `validate:"gt=0"`
	PerfectHumidityBelow float64 `validate:"gt=0,lte=100"`
}

// DefaultThresholds returns the stock cleanup thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxTemperature:       35,
		MaxUV:                9,
		MaxWind:              25,
		MinTemperature:       20,
		MaxHumidity:          90,
		PerfectTempLow:       24,
		PerfectTempHigh:      32,
		PerfectWindBelow:     20,
		PerfectHumidityBelow: 85,
	}
}

var (
	stormKeywords = []string{"thunder", "heavy rain", "heavy shower"}
	rainKeywords  = []string{"rain", "shower", "drizzle"}
)

// SuitabilityInput is the set of conditions the ladder looks at.
type SuitabilityInput struct {
	Temperature  float64
	Humidity     float64
	WindSpeed    float64
	UVIndex      float64
	ForecastText string
}

// Assessment is a rating plus a short reason for display.
type Assessment struct {
	Level SuitabilityLevel `json:"level"`
	Note  string           `json:"note"`
}

// Classify rates conditions for an outdoor cleanup. Rules are evaluated in
// order and the first match wins; hazard rules must stay ahead of the comfort
// rules so dangerous days are never downgraded to merely Okay.
func Classify(in SuitabilityInput, th Thresholds) Assessment {
	text := strings.ToLower(in.ForecastText)

	switch {
	case in.Temperature > th.MaxTemperature:
		return Assessment{SuitabilityPoor, "too hot"}
	case in.UVIndex > th.MaxUV:
		return Assessment{SuitabilityPoor, "extreme UV"}
	case in.WindSpeed > th.MaxWind:
		return Assessment{SuitabilityPoor, "too windy"}
	case common.HasAny(text, stormKeywords...):
		return Assessment{SuitabilityPoor, "thunderstorms expected"}
	case in.Temperature < th.MinTemperature:
		return Assessment{SuitabilityOkay, "dress warmly"}
	case in.Humidity > th.MaxHumidity:
		return Assessment{SuitabilityOkay, "humid, take breaks"}
	case common.HasAny(text, rainKeywords...):
		return Assessment{SuitabilityOkay, "rain expected"}
	case in.Temperature >= th.PerfectTempLow && in.Temperature <= th.PerfectTempHigh &&
		in.WindSpeed < th.PerfectWindBelow && in.Humidity < th.PerfectHumidityBelow:
		return Assessment{SuitabilityPerfect, "ideal conditions"}
	default:
		return Assessment{SuitabilityGood, "good conditions"}
	}
}

// Suitability classifies a current-conditions record on its own.
func Suitability(c CurrentConditions, th Thresholds) SuitabilityLevel {
	return Classify(SuitabilityInput{
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		UVIndex:     c.UVIndex,
	}, th).Level
}
