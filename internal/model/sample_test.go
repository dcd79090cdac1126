package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlySeries(start time.Time, n int) []HourlySample {
	out := make([]HourlySample, n)
	for i := range out {
		out[i] = HourlySample{
			Timestamp:      start.Add(time.Duration(i) * time.Hour),
			ConsumptionKWh: 1,
		}
	}
	return out
}

func TestValidateSeries(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateSeries(hourlySeries(start, 48)))

	err := ValidateSeries(nil)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, -1, vErr.Index)

	s := hourlySeries(start, 5)
	s[3].ConsumptionKWh = -0.1
	err = ValidateSeries(s)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 3, vErr.Index)
	assert.Equal(t, "consumption_kwh", vErr.Field)
	assert.Contains(t, err.Error(), "2024-03-01 03:00")

	s = hourlySeries(start, 5)
	s[2].ProductionKWh = -1
	err = ValidateSeries(s)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "production_kwh", vErr.Field)

	// Gap between samples.
	s = hourlySeries(start, 5)
	s[4].Timestamp = s[4].Timestamp.Add(time.Hour)
	err = ValidateSeries(s)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 4, vErr.Index)
	assert.Equal(t, "timestamp", vErr.Field)

	// Duplicate hour.
	s = hourlySeries(start, 5)
	s[1].Timestamp = s[0].Timestamp
	assert.Error(t, ValidateSeries(s))
}

func TestHoursInYear(t *testing.T) {
	assert.Equal(t, 8784, HoursInYear(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 8760, HoursInYear(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
}
