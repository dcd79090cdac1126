package report

import (
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"

	"solar-calculator/internal/finance"
	"solar-calculator/internal/simulate"
)

// writePDF renders a one-page summary of the analysis.
func (e *Emitter) writePDF(path string, a *Analysis) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Solar Analysis Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if a.SystemName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("System: %s", a.SystemName))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", a.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	s := a.Summary
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Annual costs")
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Scenario", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Annual cost", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Savings", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	scenarioRow(pdf, "No solar (baseline)", s.BaselineCost, 0)
	scenarioRow(pdf, "Solar only", s.SolarOnly.AnnualCost, s.SolarOnly.Savings)
	if s.WithBattery != nil {
		scenarioRow(pdf, "Solar + battery", s.WithBattery.AnnualCost, s.WithBattery.Savings)
	}
	pdf.Ln(4)

	pdf.Cell(0, 6, fmt.Sprintf("System cost: %.2f", s.SystemCost))
	pdf.Ln(5)
	if math.IsInf(s.PaybackYears, 1) {
		pdf.Cell(0, 6, "Payback: never (no positive savings)")
	} else {
		pdf.Cell(0, 6, fmt.Sprintf("Payback: %.1f years", s.PaybackYears))
	}
	pdf.Ln(5)
	if s.WithBattery != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Battery marginal savings: %.2f/year", s.BatteryMarginalSavings))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Energy totals")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	energyTotals(pdf, "Solar only", a.SolarOnly.Totals)
	if a.WithBattery != nil {
		energyTotals(pdf, "Solar + battery", a.WithBattery.Totals)
	}

	if len(a.Monthly) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Monthly breakdown")
		pdf.Ln(7)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 6, "Month", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Consumption", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Production", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Export", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Import", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, m := range a.Monthly {
			monthlyRow(pdf, m)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func scenarioRow(pdf *gofpdf.Fpdf, name string, annual, savings float64) {
	pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", annual), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", savings), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func energyTotals(pdf *gofpdf.Fpdf, name string, t simulate.Totals) {
	pdf.Cell(0, 6, fmt.Sprintf(
		"%s: consumed %.1f kWh, produced %.1f kWh, self-consumed %.1f kWh, exported %.1f kWh, imported %.1f kWh",
		name, t.ConsumptionKWh, t.ProductionKWh, t.SelfConsumedKWh, t.GridExportKWh, t.GridImportKWh))
	pdf.Ln(5)
}

func monthlyRow(pdf *gofpdf.Fpdf, m finance.MonthlyTotal) {
	pdf.CellFormat(30, 6, m.Month.String(), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.ConsumptionKWh), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.ProductionKWh), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.GridExportKWh), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", m.GridImportKWh), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
}
