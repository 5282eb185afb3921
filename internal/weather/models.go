package weather

import (
	"time"
)

// MeasurementKind identifies one of the per-station readings published by the upstream source.
type MeasurementKind string

const (
	KindTemperature   MeasurementKind = "temperature"
	KindHumidity      MeasurementKind = "humidity"
	KindWindSpeed     MeasurementKind = "windSpeed"
	KindWindDirection MeasurementKind = "windDirection"
	KindUVIndex       MeasurementKind = "uvIndex"
)

// MeasurementKinds lists every kind fetched for current conditions, in slot order.
var MeasurementKinds = []MeasurementKind{
	KindTemperature,
	KindHumidity,
	KindWindSpeed,
	KindWindDirection,
	KindUVIndex,
}

// StationReading is one station's value for one measurement kind.
// A nil Value means the station reported null.
type StationReading struct {
	StationID string   `json:"stationId"`
	Value     *float64 `json:"value"`
}

// MeasurementSet maps each kind to the readings fetched in one cycle.
type MeasurementSet map[MeasurementKind][]StationReading

// PreferredStations is the ordered priority list of station identifiers.
type PreferredStations []string

// SuitabilityLevel is the four-level cleanup rating.
type SuitabilityLevel string

const (
	SuitabilityPerfect SuitabilityLevel = "perfect"
	SuitabilityGood    SuitabilityLevel = "good"
	SuitabilityOkay    SuitabilityLevel = "okay"
	SuitabilityPoor    SuitabilityLevel = "poor"
)

// Condition symbols shown by the renderer.
const (
	SymbolClear    = "☀️"
	SymbolHot      = "🔆"
	SymbolPartial  = "⛅"
	SymbolCloud    = "☁️"
	SymbolRain     = "🌧️"
	SymbolStorm    = "⛈️"
	SymbolHaze     = "🌫️"
	SymbolWindy    = "💨"
	SymbolOvercast = "🌥️"
)

// CurrentConditions is the summary produced by one current-conditions load.
// Every numeric field is populated, falling back to defaults when data is absent.
type CurrentConditions struct {
	Temperature     float64          `json:"temperature"`
	Humidity        float64          `json:"humidity"`
	WindSpeed       float64          `json:"windSpeed"`
	WindDirection   string           `json:"windDirection"`
	UVIndex         float64          `json:"uvIndex"`
	ConditionSymbol string           `json:"conditionSymbol"`
	Description     string           `json:"description"`
	LocationLabel   string           `json:"locationLabel"`
	ObservedAt      time.Time        `json:"observedAt"`
	IsOffline       bool             `json:"isOffline"`
	Suitability     SuitabilityLevel `json:"suitability"`
	SuitabilityNote string           `json:"suitabilityNote"`

	// Stations records which station supplied each value; empty when a default was used.
	Stations map[MeasurementKind]string `json:"stations,omitempty"`
}

// ForecastDay is one entry of the multi-day forecast, index 0 being the soonest.
type ForecastDay struct {
	Label           string           `json:"label"`
	Date            *time.Time       `json:"date"`
	TemperatureHigh float64          `json:"temperatureHigh"`
	TemperatureLow  float64          `json:"temperatureLow"`
	ConditionText   string           `json:"conditionText"`
	ConditionSymbol string           `json:"conditionSymbol"`
	WindSummary     string           `json:"windSummary"`
	HumiditySummary *string          `json:"humiditySummary"`
	Suitability     SuitabilityLevel `json:"suitability"`
	SuitabilityNote string           `json:"suitabilityNote"`
}

// Range is a low/high pair as published in forecast payloads.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ForecastEntry is one upstream forecast day after boundary validation.
type ForecastEntry struct {
	Date             time.Time
	TemperatureHigh  float64
	TemperatureLow   float64
	ForecastText     string
	RelativeHumidity *Range
	WindSpeedKmh     *Range
	WindDirection    string
}

// Report pairs the results of one load cycle.
type Report struct {
	Generation uint64            `json:"generation"`
	CycleID    string            `json:"cycleId"`
	Current    CurrentConditions `json:"current"`
	Forecast   []ForecastDay     `json:"forecast"`
}
