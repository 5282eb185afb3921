package weather

import (
	"time"
)

// OfflineConditions returns the static record used when live data is unavailable.
// Symbol, description and suitability come from the same ladders as live data.
func OfflineConditions(locationLabel string, now time.Time, th Thresholds) CurrentConditions {
	c := CurrentConditions{
		Temperature:   30,
		Humidity:      75,
		WindSpeed:     12,
		WindDirection: "NE",
		UVIndex:       7,
		Description:   "Live weather unavailable, showing typical conditions",
		LocationLabel: locationLabel + " (offline)",
		ObservedAt:    now,
		IsOffline:     true,
	}
	c.ConditionSymbol = currentSymbol(c.Temperature, c.Humidity, c.WindSpeed)

	assessment := Classify(SuitabilityInput{
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		UVIndex:     c.UVIndex,
	}, th)
	c.Suitability = assessment.Level
	c.SuitabilityNote = assessment.Note
	return c
}

// offlineWeek is a typical week; Date is unused.
var offlineWeek = [7]ForecastEntry{
	{TemperatureHigh: 32, TemperatureLow: 26, ForecastText: "Partly Cloudy",
		RelativeHumidity: &Range{Low: 60, High: 80}, WindSpeedKmh: &Range{Low: 10, High: 15}, WindDirection: "NE"},
	{TemperatureHigh: 31, TemperatureLow: 25, ForecastText: "Afternoon Showers",
		RelativeHumidity: &Range{Low: 60, High: 95}, WindSpeedKmh: &Range{Low: 10, High: 20}, WindDirection: "NE"},
	{TemperatureHigh: 33, TemperatureLow: 26, ForecastText: "Fair",
		RelativeHumidity: &Range{Low: 55, High: 80}, WindSpeedKmh: &Range{Low: 10, High: 20}, WindDirection: "E"},
	{TemperatureHigh: 30, TemperatureLow: 25, ForecastText: "Thundery Showers",
		RelativeHumidity: &Range{Low: 65, High: 95}, WindSpeedKmh: &Range{Low: 15, High: 30}, WindDirection: "NE"},
	{TemperatureHigh: 31, TemperatureLow: 26, ForecastText: "Fair and Warm",
		RelativeHumidity: &Range{Low: 55, High: 80}, WindSpeedKmh: &Range{Low: 5, High: 15}, WindDirection: "NE"},
	{TemperatureHigh: 31, TemperatureLow: 25, ForecastText: "Cloudy",
		RelativeHumidity: &Range{Low: 65, High: 90}, WindSpeedKmh: &Range{Low: 10, High: 20}, WindDirection: "N"},
	{TemperatureHigh: 32, TemperatureLow: 26, ForecastText: "Hazy",
		RelativeHumidity: &Range{Low: 50, High: 75}, WindSpeedKmh: &Range{Low: 5, High: 15}, WindDirection: "E"},
}

// OfflineForecast returns the fixed seven-day fallback forecast. Labels are
// relative to now; dates are unknown and left nil.
func OfflineForecast(now time.Time, th Thresholds) []ForecastDay {
	days := make([]ForecastDay, 0, len(offlineWeek))
	for i, e := range offlineWeek {
		days = append(days, newForecastDay(dayLabel(i, now.AddDate(0, 0, i)), nil, e, th))
	}
	return days
}
