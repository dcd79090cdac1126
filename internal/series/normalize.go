// Package series turns irregular timestamped meter readings into the fixed
// hourly grid the simulator consumes. Sub-hourly readings are summed within
// their hour; an hour with no source reading is an error, never interpolated.
package series

import (
	"fmt"
	"sort"
	"time"

	"solar-calculator/internal/model"
)

// RawReading is a single timestamped meter reading at arbitrary resolution.
type RawReading struct {
	Timestamp time.Time
	UsageKWh  float64

	// Actual is false for estimated meter readings.
	Actual bool
}

// MissingHourError names the first hour of the target grid with no source
// reading.
type MissingHourError struct {
	Hour time.Time
}

func (e *MissingHourError) Error() string {
	return fmt.Sprintf("no meter reading for hour %s", e.Hour.Format("2006-01-02 15:04"))
}

// Normalize aggregates readings onto the hourly grid [start, start+hours).
// Each output hour sums every reading whose timestamp truncates to it, and
// is marked Estimated unless all of its readings are Actual. Negative usage
// values fail validation; a grid hour with no reading yields a
// *MissingHourError.
func Normalize(readings []RawReading, start time.Time, hours int) ([]model.HourlySample, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be > 0, got %d", hours)
	}
	start = floorHour(start)

	type bucket struct {
		usage     float64
		count     int
		allActual bool
	}
	buckets := make(map[time.Time]*bucket, hours)

	for i, r := range readings {
		if r.UsageKWh < 0 {
			return nil, &model.ValidationError{
				Index: i, Field: "usage_kwh", Msg: "must be >= 0", Timestamp: r.Timestamp,
			}
		}
		h := floorHour(r.Timestamp)
		b, ok := buckets[h]
		if !ok {
			b = &bucket{allActual: true}
			buckets[h] = b
		}
		b.usage += r.UsageKWh
		b.count++
		b.allActual = b.allActual && r.Actual
	}

	out := make([]model.HourlySample, 0, hours)
	for i := 0; i < hours; i++ {
		h := start.Add(time.Duration(i) * time.Hour)
		b, ok := buckets[h]
		if !ok || b.count == 0 {
			return nil, &MissingHourError{Hour: h}
		}
		out = append(out, model.HourlySample{
			Timestamp:      h,
			ConsumptionKWh: b.usage,
			Estimated:      !b.allActual,
		})
	}
	return out, nil
}

// NormalizeYear aggregates readings onto the full calendar-year grid of the
// earliest reading (8760 or 8784 hours).
func NormalizeYear(readings []RawReading) ([]model.HourlySample, error) {
	if len(readings) == 0 {
		return nil, fmt.Errorf("no readings")
	}
	earliest := readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.Before(earliest) {
			earliest = r.Timestamp
		}
	}
	start := time.Date(earliest.Year(), time.January, 1, 0, 0, 0, 0, earliest.Location())
	return Normalize(readings, start, model.HoursInYear(earliest))
}

// Merge attaches a production series to a consumption series sample by
// sample. Both must share timestamps; a mismatch fails validation with the
// offending index.
func Merge(consumption, production []model.HourlySample) ([]model.HourlySample, error) {
	if len(consumption) != len(production) {
		return nil, &model.ValidationError{
			Index: -1, Field: "series",
			Msg: fmt.Sprintf("length mismatch: %d consumption vs %d production hours", len(consumption), len(production)),
		}
	}
	out := make([]model.HourlySample, len(consumption))
	for i := range consumption {
		if !consumption[i].Timestamp.Equal(production[i].Timestamp) {
			return nil, &model.ValidationError{
				Index: i, Field: "timestamp", Msg: "consumption/production misaligned",
				Timestamp: consumption[i].Timestamp,
			}
		}
		out[i] = consumption[i]
		out[i].ProductionKWh = production[i].ProductionKWh
	}
	return out, nil
}

// floorHour returns the start of t's wall-clock hour at t's own UTC offset.
// Truncate rounds absolute time since the zero time, which lands the grid on
// :30 local in half-hour-offset zones, so sub-hour components are stripped
// instead.
func floorHour(t time.Time) time.Time {
	return t.Add(-(time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())))
}

// SortReadings orders readings chronologically in place.
func SortReadings(readings []RawReading) {
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
}
