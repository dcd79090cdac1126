// Package solar provides an offline hourly production estimate from sun
// geometry. It is a coarse stand-in for the PVWatts provider when no API key
// is available: clear-sky output scaled by system capacity and losses, no
// weather model.
package solar

import (
	"errors"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"solar-calculator/internal/model"
)

// EstimatorParams configures the clear-sky model.
type EstimatorParams struct {
	CapacityKW float64
	LossesPct  float64 // 0..99, applied as a flat derate
	Latitude   float64
	Longitude  float64

	// CapacityFactor scales peak output; defaults to 0.8 to approximate
	// real-world module behavior below nameplate at the zenith.
	CapacityFactor float64
}

type Estimator struct {
	params EstimatorParams
	loc    *time.Location
}

func NewEstimator(params EstimatorParams, loc *time.Location) (*Estimator, error) {
	if params.CapacityKW <= 0 {
		return nil, errors.New("capacity must be > 0")
	}
	if params.LossesPct < 0 || params.LossesPct > 99 {
		return nil, errors.New("losses must be within [0, 99] percent")
	}
	if params.Latitude < -90 || params.Latitude > 90 {
		return nil, errors.New("latitude must be between -90 and 90")
	}
	if params.Longitude < -180 || params.Longitude > 180 {
		return nil, errors.New("longitude must be between -180 and 180")
	}
	if params.CapacityFactor == 0 {
		params.CapacityFactor = 0.8
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Estimator{params: params, loc: loc}, nil
}

// HourlyYear models one calendar year of hourly production. Each hour's
// output is nameplate capacity times the sine of the solar altitude at the
// middle of the hour, derated by losses; hours with the sun below the
// horizon produce zero.
func (e *Estimator) HourlyYear(year int) []model.HourlySample {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, e.loc)
	hours := model.HoursInYear(start)
	derate := (1 - e.params.LossesPct/100) * e.params.CapacityFactor

	out := make([]model.HourlySample, hours)
	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		mid := ts.Add(30 * time.Minute)

		pos := suncalc.GetPosition(mid, e.params.Latitude, e.params.Longitude)
		altitudeFactor := math.Sin(pos.Altitude)
		if altitudeFactor < 0 {
			altitudeFactor = 0
		}

		out[i] = model.HourlySample{
			Timestamp:     ts,
			ProductionKWh: e.params.CapacityKW * altitudeFactor * derate,
		}
	}
	return out
}
