package weather

// Resolve picks a single value from a multi-station payload.
// The first preferred station with a non-null value wins; otherwise the first
// non-null reading in input order is used regardless of station. When nothing
// usable exists it returns ErrNoStationData and the caller applies its default.
func Resolve(readings []StationReading, preferred PreferredStations) (float64, string, error) {
	if len(readings) == 0 {
		return 0, "", ErrNoStationData
	}

	byStation := make(map[string]float64, len(readings))
	for _, r := range readings {
		if r.Value == nil {
			continue
		}
		// Keep the first non-null value reported for a station.
		if _, seen := byStation[r.StationID]; !seen {
			byStation[r.StationID] = *r.Value
		}
	}

	for _, id := range preferred {
		if v, ok := byStation[id]; ok {
			return v, id, nil
		}
	}

	for _, r := range readings {
		if r.Value != nil {
			return *r.Value, r.StationID, nil
		}
	}

	return 0, "", ErrNoStationData
}

// MeasurementDefaults are used for a kind when no station reported a value.
var MeasurementDefaults = map[MeasurementKind]float64{
	KindTemperature:   30,
	KindHumidity:      75,
	KindWindSpeed:     10,
	KindWindDirection: 45,
	KindUVIndex:       6,
}

// ResolveOrDefault resolves readings for kind, falling back to MeasurementDefaults.
// The returned error is ErrNoStationData when the default was applied.
func ResolveOrDefault(kind MeasurementKind, readings []StationReading, preferred PreferredStations) (float64, string, error) {
	v, station, err := Resolve(readings, preferred)
	if err != nil {
		return MeasurementDefaults[kind], "", err
	}
	return v, station, nil
}
