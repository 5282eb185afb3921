package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/cleanup-weather/internal/common"
)

// currentSymbol picks a condition symbol for live readings.
func currentSymbol(temp, humidity, wind float64) string {
	switch {
	case humidity > 85 && temp <= 28:
		return SymbolRain
	case humidity > 85:
		return SymbolOvercast
	case temp > 32:
		return SymbolHot
	case wind > 20:
		return SymbolWindy
	default:
		return SymbolClear
	}
}

// currentDescription follows the hot / cool / humid / windy / pleasant ladder.
func currentDescription(temp, humidity, wind float64) string {
	switch {
	case temp > 32:
		return "Hot"
	case temp < 22:
		return "Cool"
	case humidity > 85:
		return "Humid"
	case wind > 20:
		return "Windy"
	default:
		return "Pleasant"
	}
}

// forecastSymbol maps free forecast text to a symbol. First match wins.
func forecastSymbol(text string) string {
	switch {
	case common.HasAnyFold(text, "thunder", "heavy rain", "heavy shower"):
		return SymbolStorm
	case common.HasAnyFold(text, "rain", "shower", "drizzle"):
		return SymbolRain
	case common.HasAnyFold(text, "cloudy", "overcast"):
		return SymbolCloud
	case common.HasAnyFold(text, "partly", "fair"):
		return SymbolPartial
	case common.HasAnyFold(text, "haze", "hazy", "mist"):
		return SymbolHaze
	default:
		return SymbolClear
	}
}

// dayLabel names forecast entry i.
func dayLabel(i int, date time.Time) string {
	switch i {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return date.Weekday().String()
	}
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compass converts degrees to an 8-point direction.
func compass(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}

func windSummary(speed *Range, direction string) string {
	if speed == nil {
		if direction == "" {
			return "Wind data unavailable"
		}
		return direction
	}
	s := fmt.Sprintf("%.0f-%.0f km/h", speed.Low, speed.High)
	if direction != "" {
		s += " " + direction
	}
	return s
}

func humiditySummary(h *Range) *string {
	if h == nil {
		return nil
	}
	s := fmt.Sprintf("%.0f-%.0f%%", h.Low, h.High)
	return &s
}
