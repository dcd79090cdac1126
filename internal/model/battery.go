package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of a home battery.
// Units:
// - CapacityKWh: kWh
// - MaxChargeRateKWh / MaxDischargeRateKWh: kWh per hour
// - RoundTripEfficiency: 0..1
// - UsableDepthOfDischarge: 0..1 (fraction of capacity the policy may drain)
type BatteryParams struct {
	CapacityKWh            float64
	MaxChargeRateKWh       float64
	MaxDischargeRateKWh    float64
	RoundTripEfficiency    float64
	UsableDepthOfDischarge float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOCKWh is the state of charge in kWh, 0..CapacityKWh.
	SOCKWh float64
}

// Battery is a convenience wrapper bundling params + state.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

func NewBattery(params BatteryParams, initialSOCKWh float64) (*Battery, error) {
	b := &Battery{
		Params: params,
		State:  BatteryState{SOCKWh: initialSOCKWh},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityKWh <= 0 {
		return errors.New("CapacityKWh must be > 0")
	}
	if p.MaxChargeRateKWh <= 0 {
		return errors.New("MaxChargeRateKWh must be > 0")
	}
	if p.MaxDischargeRateKWh <= 0 {
		return errors.New("MaxDischargeRateKWh must be > 0")
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return errors.New("RoundTripEfficiency must be in (0, 1]")
	}
	if p.UsableDepthOfDischarge <= 0 || p.UsableDepthOfDischarge > 1 {
		return errors.New("UsableDepthOfDischarge must be in (0, 1]")
	}
	if b.State.SOCKWh < 0 || b.State.SOCKWh > p.CapacityKWh {
		return errors.New("initial SOC must be within [0, CapacityKWh]")
	}
	return nil
}

// Floor returns the minimum SOC the discharge policy may drain to.
func (b *Battery) Floor() float64 {
	return b.Params.CapacityKWh * (1 - b.Params.UsableDepthOfDischarge)
}

// Charge absorbs up to surplusKWh of excess solar for one hour.
// It returns the energy actually drawn from the surplus. Round-trip
// efficiency is applied once here, so only drawn*efficiency lands in the SOC;
// discharge delivers 1:1. That keeps losses accounted against production,
// never against export.
func (b *Battery) Charge(surplusKWh float64) (drawnKWh float64) {
	if surplusKWh <= 0 {
		return 0
	}
	headroom := b.Params.CapacityKWh - b.State.SOCKWh
	if headroom <= 0 {
		return 0
	}
	drawnKWh = math.Min(surplusKWh, math.Min(b.Params.MaxChargeRateKWh, headroom))
	b.State.SOCKWh += drawnKWh * b.Params.RoundTripEfficiency
	if b.State.SOCKWh > b.Params.CapacityKWh {
		b.State.SOCKWh = b.Params.CapacityKWh
	}
	return drawnKWh
}

// Discharge supplies up to deficitKWh of unmet load for one hour.
// It returns the energy delivered, limited by the discharge rate and the
// usable SOC above the floor.
func (b *Battery) Discharge(deficitKWh float64) (deliveredKWh float64) {
	if deficitKWh <= 0 {
		return 0
	}
	available := b.State.SOCKWh - b.Floor()
	if available <= 0 {
		return 0
	}
	deliveredKWh = math.Min(deficitKWh, math.Min(b.Params.MaxDischargeRateKWh, available))
	b.State.SOCKWh -= deliveredKWh
	if b.State.SOCKWh < 0 {
		b.State.SOCKWh = 0
	}
	return deliveredKWh
}

// Reset returns the battery to the given SOC ahead of a scenario run.
func (b *Battery) Reset(socKWh float64) {
	b.State.SOCKWh = socKWh
}
