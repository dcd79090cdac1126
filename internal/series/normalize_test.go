package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-calculator/internal/model"
)

func halfHourly(start time.Time, hours int, kwhPerHalfHour float64) []RawReading {
	out := make([]RawReading, 0, hours*2)
	for i := 0; i < hours*2; i++ {
		out = append(out, RawReading{
			Timestamp: start.Add(time.Duration(i) * 30 * time.Minute),
			UsageKWh:  kwhPerHalfHour,
			Actual:    true,
		})
	}
	return out
}

func TestNormalizeSumsHalfHours(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	readings := halfHourly(start, 24, 0.4)

	samples, err := Normalize(readings, start, 24)
	require.NoError(t, err)
	require.Len(t, samples, 24)
	for i, s := range samples {
		assert.InDelta(t, 0.8, s.ConsumptionKWh, 1e-9, "hour %d", i)
		assert.Equal(t, start.Add(time.Duration(i)*time.Hour), s.Timestamp)
		assert.False(t, s.Estimated)
	}
}

func TestNormalizeHalfHourOffsetZone(t *testing.T) {
	// Adelaide sits at UTC+10:30; the grid must land on :00 local, not :30.
	acst := time.FixedZone("ACST", 10*3600+1800)
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, acst)
	readings := halfHourly(start, 2, 0.5)
	readings[1].UsageKWh = 0.25 // 00:30 local belongs to the 00:00 hour

	samples, err := Normalize(readings, start, 2)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	for i, s := range samples {
		assert.Equal(t, i, s.Timestamp.Hour())
		assert.Equal(t, 0, s.Timestamp.Minute())
	}
	assert.InDelta(t, 0.75, samples[0].ConsumptionKWh, 1e-9)
	assert.InDelta(t, 1.0, samples[1].ConsumptionKWh, 1e-9)
}

func TestNormalizeFlagsEstimatedHours(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	readings := halfHourly(start, 2, 0.5)
	readings[1].Actual = false // second half-hour of hour 0

	samples, err := Normalize(readings, start, 2)
	require.NoError(t, err)
	assert.True(t, samples[0].Estimated)
	assert.False(t, samples[1].Estimated)
}

func TestNormalizeMissingHourNamesIt(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	readings := halfHourly(start, 3, 0.5)
	// Drop both readings of hour 1.
	readings = append(readings[:2], readings[4:]...)

	_, err := Normalize(readings, start, 3)
	var missing *MissingHourError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, start.Add(time.Hour), missing.Hour)
	assert.Contains(t, err.Error(), "2024-05-10 01:00")
}

func TestNormalizeRejectsNegativeUsage(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	readings := halfHourly(start, 1, 0.5)
	readings[1].UsageKWh = -0.2

	_, err := Normalize(readings, start, 1)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "usage_kwh", vErr.Field)
}

func TestNormalizeYearUsesCalendarOfEarliestReading(t *testing.T) {
	// Full non-leap year of hourly readings.
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := halfHourly(start, 8760, 0.25)

	samples, err := NormalizeYear(readings)
	require.NoError(t, err)
	require.Len(t, samples, 8760)
	assert.Equal(t, start, samples[0].Timestamp)

	_, err = NormalizeYear(nil)
	assert.Error(t, err)
}

func TestMergeAlignsByTimestamp(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	consumption := []model.HourlySample{
		{Timestamp: start, ConsumptionKWh: 1.2, Estimated: true},
		{Timestamp: start.Add(time.Hour), ConsumptionKWh: 0.9},
	}
	production := []model.HourlySample{
		{Timestamp: start, ProductionKWh: 3.1},
		{Timestamp: start.Add(time.Hour), ProductionKWh: 2.2},
	}

	merged, err := Merge(consumption, production)
	require.NoError(t, err)
	assert.Equal(t, 1.2, merged[0].ConsumptionKWh)
	assert.Equal(t, 3.1, merged[0].ProductionKWh)
	assert.True(t, merged[0].Estimated)
	assert.Equal(t, 2.2, merged[1].ProductionKWh)

	_, err = Merge(consumption, production[:1])
	assert.Error(t, err)

	production[1].Timestamp = production[1].Timestamp.Add(time.Minute)
	_, err = Merge(consumption, production)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 1, vErr.Index)
}

func TestSortReadings(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	readings := []RawReading{
		{Timestamp: start.Add(2 * time.Hour)},
		{Timestamp: start},
		{Timestamp: start.Add(time.Hour)},
	}
	SortReadings(readings)
	assert.Equal(t, start, readings[0].Timestamp)
	assert.Equal(t, start.Add(2*time.Hour), readings[2].Timestamp)
}
