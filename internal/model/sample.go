package model

import "time"

// HourlySample is one aligned hour of consumption and production.
// Timestamps are hour resolution, strictly increasing, contiguous.
type HourlySample struct {
	Timestamp      time.Time `json:"timestamp"`
	ConsumptionKWh float64   `json:"consumption_kwh"`
	ProductionKWh  float64   `json:"production_kwh"`

	// Estimated marks hours whose meter readings were not all Actual.
	Estimated bool `json:"estimated,omitempty"`
}

// HoursInYear returns the number of hours in the calendar year of t
// (8784 for leap years, 8760 otherwise).
func HoursInYear(t time.Time) int {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(1, 0, 0)
	return int(end.Sub(start).Hours())
}

// ValidateSeries checks the simulator's input contract: non-empty, hourly
// spacing with no gaps or duplicates, and non-negative energy fields.
// It returns a *ValidationError naming the first offending sample.
func ValidateSeries(samples []HourlySample) error {
	if len(samples) == 0 {
		return &ValidationError{Index: -1, Field: "series", Msg: "series is empty"}
	}
	for i, s := range samples {
		if s.ConsumptionKWh < 0 {
			return &ValidationError{Index: i, Field: "consumption_kwh", Msg: "must be >= 0", Timestamp: s.Timestamp}
		}
		if s.ProductionKWh < 0 {
			return &ValidationError{Index: i, Field: "production_kwh", Msg: "must be >= 0", Timestamp: s.Timestamp}
		}
		if i == 0 {
			continue
		}
		gap := s.Timestamp.Sub(samples[i-1].Timestamp)
		if gap != time.Hour {
			return &ValidationError{Index: i, Field: "timestamp", Msg: "samples must be contiguous hourly", Timestamp: s.Timestamp}
		}
	}
	return nil
}
