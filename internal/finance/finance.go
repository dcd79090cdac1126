package finance

import (
	"encoding/json"
	"errors"
	"math"

	"solar-calculator/internal/model"
	"solar-calculator/internal/simulate"
)

// ScenarioCost is the annual cash flow for one scenario over the horizon.
type ScenarioCost struct {
	ImportCost     float64 `json:"import_cost"`
	ExportEarnings float64 `json:"export_earnings"`
	SupplyCharge   float64 `json:"supply_charge"`

	// AnnualCost = ImportCost - ExportEarnings + SupplyCharge.
	AnnualCost float64 `json:"annual_cost"`

	// Savings vs the no-solar baseline for the same consumption.
	Savings float64 `json:"savings"`
}

// Summary is the terminal financial artifact of a run.
type Summary struct {
	BaselineCost float64 `json:"baseline_cost"`

	SolarOnly   ScenarioCost  `json:"solar_only"`
	WithBattery *ScenarioCost `json:"with_battery,omitempty"`

	// BatteryMarginalSavings = WithBattery.Savings - SolarOnly.Savings.
	BatteryMarginalSavings float64 `json:"battery_marginal_savings"`

	SystemCost float64 `json:"system_cost"`

	// PaybackYears is +Inf when savings are not positive; use Recoverable
	// to distinguish "never pays back" from a finite horizon.
	PaybackYears float64 `json:"-"`
	Recoverable  bool    `json:"recoverable"`
}

// MarshalJSON emits payback_years as null when the system never pays back,
// since +Inf is not representable in JSON.
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	out := struct {
		alias
		PaybackYears *float64 `json:"payback_years"`
	}{alias: alias(s)}
	if !math.IsInf(s.PaybackYears, 1) {
		v := s.PaybackYears
		out.PaybackYears = &v
	}
	return json.Marshal(out)
}

// Analyze converts simulator output into a Summary. withBattery may be nil
// for a solar-only analysis; payback is then computed from the solar-only
// savings. Zero or negative savings yield Recoverable=false, not an error.
func Analyze(solarOnly, withBattery *simulate.Result, tariff model.TariffParams, systemCost float64) (*Summary, error) {
	if solarOnly == nil || len(solarOnly.Hours) == 0 {
		return nil, errors.New("no hours to analyze")
	}
	if systemCost < 0 {
		return nil, errors.New("system cost must be >= 0")
	}
	if err := tariff.Validate(); err != nil {
		return nil, err
	}

	days := countDays(solarOnly)
	supply := tariff.SupplyChargePerDay * float64(days)
	baseline := solarOnly.Totals.ConsumptionKWh*tariff.ImportRatePerKWh + supply

	s := &Summary{
		BaselineCost: baseline,
		SolarOnly:    scenarioCost(solarOnly, tariff, supply, baseline),
		SystemCost:   systemCost,
	}

	drivingSavings := s.SolarOnly.Savings
	if withBattery != nil {
		sc := scenarioCost(withBattery, tariff, supply, baseline)
		s.WithBattery = &sc
		s.BatteryMarginalSavings = sc.Savings - s.SolarOnly.Savings
		drivingSavings = sc.Savings
	}

	if drivingSavings > 0 {
		s.PaybackYears = systemCost / drivingSavings
		s.Recoverable = true
	} else {
		s.PaybackYears = math.Inf(1)
	}
	return s, nil
}

func scenarioCost(res *simulate.Result, tariff model.TariffParams, supply, baseline float64) ScenarioCost {
	c := ScenarioCost{SupplyCharge: supply}
	for _, h := range res.Hours {
		c.ImportCost += h.GridImportKWh * tariff.ImportRatePerKWh
		c.ExportEarnings += h.GridExportKWh * tariff.ExportRateAt(h.Timestamp.Hour())
	}
	c.AnnualCost = c.ImportCost - c.ExportEarnings + supply
	c.Savings = baseline - c.AnnualCost
	return c
}

func countDays(res *simulate.Result) int {
	seen := map[string]struct{}{}
	for _, h := range res.Hours {
		seen[h.Timestamp.Format("2006-01-02")] = struct{}{}
	}
	return len(seen)
}
