package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perthEstimator(t *testing.T) *Estimator {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)
	est, err := NewEstimator(EstimatorParams{
		CapacityKW: 6.6,
		LossesPct:  14,
		Latitude:   -31.95,
		Longitude:  115.86,
	}, loc)
	require.NoError(t, err)
	return est
}

func TestNewEstimatorValidation(t *testing.T) {
	_, err := NewEstimator(EstimatorParams{CapacityKW: 0, Latitude: 0, Longitude: 0}, nil)
	assert.Error(t, err)
	_, err = NewEstimator(EstimatorParams{CapacityKW: 5, LossesPct: 100}, nil)
	assert.Error(t, err)
	_, err = NewEstimator(EstimatorParams{CapacityKW: 5, Latitude: -95}, nil)
	assert.Error(t, err)
	_, err = NewEstimator(EstimatorParams{CapacityKW: 5, Longitude: 190}, nil)
	assert.Error(t, err)

	est, err := NewEstimator(EstimatorParams{CapacityKW: 5}, nil)
	require.NoError(t, err)
	assert.NotNil(t, est)
}

func TestHourlyYearShape(t *testing.T) {
	est := perthEstimator(t)

	samples := est.HourlyYear(2023)
	require.Len(t, samples, 8760)
	assert.Len(t, est.HourlyYear(2024), 8784)

	for i := 1; i < len(samples); i++ {
		assert.Equal(t, time.Hour, samples[i].Timestamp.Sub(samples[i-1].Timestamp))
	}
}

func TestHourlyYearDayNightProfile(t *testing.T) {
	est := perthEstimator(t)
	samples := est.HourlyYear(2023)

	byHour := map[int]float64{}
	for _, s := range samples {
		byHour[s.Timestamp.Hour()] += s.ProductionKWh
		assert.GreaterOrEqual(t, s.ProductionKWh, 0.0)
		assert.LessOrEqual(t, s.ProductionKWh, 6.6)
	}

	// Midnight hours never produce; midday always dominates.
	assert.Equal(t, 0.0, byHour[0])
	assert.Equal(t, 0.0, byHour[23])
	assert.Greater(t, byHour[12], 0.0)
	assert.Greater(t, byHour[12], byHour[8])
}

func TestHourlyYearLossesReduceOutput(t *testing.T) {
	loc := time.UTC
	lossless, err := NewEstimator(EstimatorParams{CapacityKW: 5, LossesPct: 0, Latitude: -31.95, Longitude: 115.86}, loc)
	require.NoError(t, err)
	lossy, err := NewEstimator(EstimatorParams{CapacityKW: 5, LossesPct: 20, Latitude: -31.95, Longitude: 115.86}, loc)
	require.NoError(t, err)

	var a, b float64
	for _, s := range lossless.HourlyYear(2023) {
		a += s.ProductionKWh
	}
	for _, s := range lossy.HourlyYear(2023) {
		b += s.ProductionKWh
	}
	assert.InDelta(t, a*0.8, b, a*0.001)
}
