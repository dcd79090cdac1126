package finance

import (
	"sort"
	"time"

	"solar-calculator/internal/simulate"
)

// MonthlyTotal aggregates one calendar month of hourly results.
type MonthlyTotal struct {
	Month           time.Month `json:"month"`
	ConsumptionKWh  float64    `json:"consumption_kwh"`
	ProductionKWh   float64    `json:"production_kwh"`
	SelfConsumedKWh float64    `json:"self_consumed_kwh"`
	GridExportKWh   float64    `json:"grid_export_kwh"`
	GridImportKWh   float64    `json:"grid_import_kwh"`
}

// MonthlyBreakdown rolls an hourly result sequence up into per-month totals,
// sorted January first.
func MonthlyBreakdown(res *simulate.Result) []MonthlyTotal {
	byMonth := map[time.Month]*MonthlyTotal{}
	for _, h := range res.Hours {
		m := h.Timestamp.Month()
		t, ok := byMonth[m]
		if !ok {
			t = &MonthlyTotal{Month: m}
			byMonth[m] = t
		}
		t.ConsumptionKWh += h.ConsumptionKWh
		t.ProductionKWh += h.ProductionKWh
		t.SelfConsumedKWh += h.SelfConsumedKWh
		t.GridExportKWh += h.GridExportKWh
		t.GridImportKWh += h.GridImportKWh
	}

	out := make([]MonthlyTotal, 0, len(byMonth))
	for _, t := range byMonth {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
