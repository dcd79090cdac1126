package simulate

import (
	"fmt"

	"solar-calculator/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the hour-by-hour energy balance over an aligned sample series.
// batt may be nil for a solar-only scenario; when present its SOC is threaded
// hour to hour and the greedy policy applies: surplus charges the battery
// before exporting, deficit discharges it before importing.
//
// The series is validated up front; Run never partially simulates a
// malformed input.
func (e *Engine) Run(samples []model.HourlySample, batt *model.Battery) (*Result, error) {
	if err := model.ValidateSeries(samples); err != nil {
		return nil, err
	}
	if batt != nil {
		if err := batt.Validate(); err != nil {
			return nil, fmt.Errorf("battery invalid: %w", err)
		}
	}

	hours := make([]HourResult, 0, len(samples))
	var tot Totals

	for idx, s := range samples {
		row := HourResult{
			Index:          idx,
			Timestamp:      s.Timestamp,
			ConsumptionKWh: s.ConsumptionKWh,
			ProductionKWh:  s.ProductionKWh,
		}

		surplus := s.ProductionKWh - s.ConsumptionKWh
		if surplus >= 0 {
			row.SelfConsumedKWh = s.ConsumptionKWh
			if batt != nil {
				row.BatteryChargeKWh = batt.Charge(surplus)
				surplus -= row.BatteryChargeKWh
			}
			row.GridExportKWh = surplus
		} else {
			deficit := -surplus
			row.SelfConsumedKWh = s.ProductionKWh
			if batt != nil {
				row.BatteryDischargeKWh = batt.Discharge(deficit)
				deficit -= row.BatteryDischargeKWh
				// Battery discharge offsets load, so it counts as
				// self-consumed solar, matching the export side where
				// charged energy never reaches the grid.
				row.SelfConsumedKWh += row.BatteryDischargeKWh
			}
			row.GridImportKWh = deficit
		}

		if batt != nil {
			row.BatterySOCEndKWh = batt.State.SOCKWh
		}
		row.Action = model.ActionFromFlows(row.BatteryChargeKWh, row.BatteryDischargeKWh)

		tot.ConsumptionKWh += row.ConsumptionKWh
		tot.ProductionKWh += row.ProductionKWh
		tot.SelfConsumedKWh += row.SelfConsumedKWh
		tot.GridExportKWh += row.GridExportKWh
		tot.GridImportKWh += row.GridImportKWh
		tot.BatteryChargeKWh += row.BatteryChargeKWh
		tot.BatteryDischargeKWh += row.BatteryDischargeKWh

		hours = append(hours, row)
	}

	res := &Result{
		Hours:  hours,
		Totals: tot,
	}
	if batt != nil {
		res.FinalSOCKWh = batt.State.SOCKWh
	}
	return res, nil
}
