package models

import (
	"time"

	"solar-calculator/internal/finance"
	"solar-calculator/internal/simulate"
)

// AnalyzeResponse represents the response from an analysis run
type AnalyzeResponse struct {
	Status  string           `json:"status"`
	Summary *finance.Summary `json:"summary"`

	SolarOnlyTotals   simulate.Totals        `json:"solar_only_totals"`
	WithBatteryTotals *simulate.Totals       `json:"with_battery_totals,omitempty"`
	Monthly           []finance.MonthlyTotal `json:"monthly"`

	Hourly []HourRow `json:"hourly,omitempty"`
}

// HourRow represents one hour in the simulation ledger
type HourRow struct {
	Index               int       `json:"index"`
	Timestamp           time.Time `json:"timestamp"`
	ConsumptionKWh      float64   `json:"consumption_kwh"`
	ProductionKWh       float64   `json:"production_kwh"`
	Action              string    `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	SelfConsumedKWh     float64   `json:"self_consumed_kwh"`
	GridExportKWh       float64   `json:"grid_export_kwh"`
	GridImportKWh       float64   `json:"grid_import_kwh"`
	BatteryChargeKWh    float64   `json:"battery_charge_kwh"`
	BatteryDischargeKWh float64   `json:"battery_discharge_kwh"`
	BatterySOCEndKWh    float64   `json:"battery_soc_end_kwh"`
}

// SiteInfo represents one known site
type SiteInfo struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityKWh         float64 `json:"capacity_kwh"`
	MaxDischargeRateKWh float64 `json:"max_discharge_rate_kwh"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
