package report

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders summary, monthly and hourly sheets.
func (e *Emitter) writeWorkbook(path string, a *Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	monthlySheet := "monthly"
	hourlySheet := "hourly"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(monthlySheet)
	f.NewSheet(hourlySheet)

	s := a.Summary
	_ = f.SetCellValue(summarySheet, "A1", "Solar Analysis")
	if a.SystemName != "" {
		_ = f.SetCellValue(summarySheet, "B1", a.SystemName)
	}
	_ = f.SetCellValue(summarySheet, "A3", "Baseline annual cost")
	_ = f.SetCellValue(summarySheet, "B3", s.BaselineCost)
	_ = f.SetCellValue(summarySheet, "A4", "Solar-only annual cost")
	_ = f.SetCellValue(summarySheet, "B4", s.SolarOnly.AnnualCost)
	_ = f.SetCellValue(summarySheet, "A5", "Solar-only savings")
	_ = f.SetCellValue(summarySheet, "B5", s.SolarOnly.Savings)
	row := 6
	if s.WithBattery != nil {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "With-battery annual cost")
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.WithBattery.AnnualCost)
		row++
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "With-battery savings")
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.WithBattery.Savings)
		row++
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Battery marginal savings")
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.BatteryMarginalSavings)
		row++
	}
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "System cost")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.SystemCost)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Payback (years)")
	if math.IsInf(s.PaybackYears, 1) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "never")
	} else {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.PaybackYears)
	}
	row += 2

	t := a.SolarOnly.Totals
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.ConsumptionKWh)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Production (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.ProductionKWh)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Self consumed (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.SelfConsumedKWh)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Grid export (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.GridExportKWh)
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Grid import (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.GridImportKWh)

	_ = f.SetCellValue(monthlySheet, "A1", "Month")
	_ = f.SetCellValue(monthlySheet, "B1", "Consumption (kWh)")
	_ = f.SetCellValue(monthlySheet, "C1", "Production (kWh)")
	_ = f.SetCellValue(monthlySheet, "D1", "Self consumed (kWh)")
	_ = f.SetCellValue(monthlySheet, "E1", "Grid export (kWh)")
	_ = f.SetCellValue(monthlySheet, "F1", "Grid import (kWh)")
	for i, m := range a.Monthly {
		r := i + 2
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", r), m.Month.String())
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", r), m.ConsumptionKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", r), m.ProductionKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", r), m.SelfConsumedKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("E%d", r), m.GridExportKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("F%d", r), m.GridImportKWh)
	}

	ledger := a.SolarOnly
	if a.WithBattery != nil {
		ledger = a.WithBattery
	}
	_ = f.SetSheetRow(hourlySheet, "A1", &[]interface{}{
		"Timestamp", "Consumption (kWh)", "Production (kWh)", "Action",
		"Self consumed (kWh)", "Grid export (kWh)", "Grid import (kWh)",
		"Battery charge (kWh)", "Battery discharge (kWh)", "Battery SOC (kWh)",
	})
	for i, h := range ledger.Hours {
		_ = f.SetSheetRow(hourlySheet, fmt.Sprintf("A%d", i+2), &[]interface{}{
			h.Timestamp.Format(time.RFC3339), h.ConsumptionKWh, h.ProductionKWh,
			string(h.Action), h.SelfConsumedKWh, h.GridExportKWh, h.GridImportKWh,
			h.BatteryChargeKWh, h.BatteryDischargeKWh, h.BatterySOCEndKWh,
		})
	}

	return f.SaveAs(path)
}
