package simulate

import (
	"time"

	"solar-calculator/internal/model"
)

// HourResult is one hour of reconciled energy flows.
// This is the primary artifact for "what happened" in a run; it is immutable
// once computed.
type HourResult struct {
	Index     int
	Timestamp time.Time

	ConsumptionKWh float64
	ProductionKWh  float64

	Action model.Action

	SelfConsumedKWh float64
	GridExportKWh   float64
	GridImportKWh   float64

	BatteryChargeKWh    float64
	BatteryDischargeKWh float64
	BatterySOCEndKWh    float64
}

// Totals holds whole-horizon sums over an HourResult sequence.
type Totals struct {
	ConsumptionKWh      float64 `json:"consumption_kwh"`
	ProductionKWh       float64 `json:"production_kwh"`
	SelfConsumedKWh     float64 `json:"self_consumed_kwh"`
	GridExportKWh       float64 `json:"grid_export_kwh"`
	GridImportKWh       float64 `json:"grid_import_kwh"`
	BatteryChargeKWh    float64 `json:"battery_charge_kwh"`
	BatteryDischargeKWh float64 `json:"battery_discharge_kwh"`
}

type Result struct {
	Hours       []HourResult
	Totals      Totals
	FinalSOCKWh float64
}
