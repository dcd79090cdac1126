package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-calculator/internal/finance"
	"solar-calculator/internal/simulate"
)

// Analysis bundles everything a single run produced. The emitter renders it
// into the artifact files without recomputing anything.
type Analysis struct {
	GeneratedAt time.Time              `json:"generated_at"`
	SystemName  string                 `json:"system_name,omitempty"`
	SolarOnly   *simulate.Result       `json:"-"`
	WithBattery *simulate.Result       `json:"-"`
	Summary     *finance.Summary       `json:"summary"`
	Monthly     []finance.MonthlyTotal `json:"monthly"`
}

// Emitter writes analysis artifacts under OutputDir. File names are stable so
// repeated runs overwrite in place.
type Emitter struct {
	OutputDir string
}

func NewEmitter(outputDir string) *Emitter {
	return &Emitter{OutputDir: outputDir}
}

// EmitAll writes every artifact and returns the paths written.
func (e *Emitter) EmitAll(a *Analysis) ([]string, error) {
	if a == nil || a.Summary == nil || a.SolarOnly == nil {
		return nil, fmt.Errorf("nothing to emit")
	}
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, err
	}

	var written []string

	hourlyPath := filepath.Join(e.OutputDir, "solar_only_hourly.csv")
	if err := simulate.WriteHourlyCSV(hourlyPath, a.SolarOnly.Hours); err != nil {
		return written, fmt.Errorf("write hourly csv: %w", err)
	}
	written = append(written, hourlyPath)

	if a.WithBattery != nil {
		batteryPath := filepath.Join(e.OutputDir, "with_battery_hourly.csv")
		if err := simulate.WriteHourlyCSV(batteryPath, a.WithBattery.Hours); err != nil {
			return written, fmt.Errorf("write battery hourly csv: %w", err)
		}
		written = append(written, batteryPath)
	}

	jsonPath := filepath.Join(e.OutputDir, "summary.json")
	if err := e.writeSummaryJSON(jsonPath, a); err != nil {
		return written, fmt.Errorf("write summary json: %w", err)
	}
	written = append(written, jsonPath)

	xlsxPath := filepath.Join(e.OutputDir, "report.xlsx")
	if err := e.writeWorkbook(xlsxPath, a); err != nil {
		return written, fmt.Errorf("write workbook: %w", err)
	}
	written = append(written, xlsxPath)

	pdfPath := filepath.Join(e.OutputDir, "report.pdf")
	if err := e.writePDF(pdfPath, a); err != nil {
		return written, fmt.Errorf("write pdf: %w", err)
	}
	written = append(written, pdfPath)

	return written, nil
}

type summaryDocument struct {
	GeneratedAt time.Time              `json:"generated_at"`
	SystemName  string                 `json:"system_name,omitempty"`
	Summary     *finance.Summary       `json:"summary"`
	SolarOnly   simulate.Totals        `json:"solar_only_totals"`
	WithBattery *simulate.Totals       `json:"with_battery_totals,omitempty"`
	Monthly     []finance.MonthlyTotal `json:"monthly"`
}

func (e *Emitter) writeSummaryJSON(path string, a *Analysis) error {
	doc := summaryDocument{
		GeneratedAt: a.GeneratedAt,
		SystemName:  a.SystemName,
		Summary:     a.Summary,
		SolarOnly:   a.SolarOnly.Totals,
		Monthly:     a.Monthly,
	}
	if a.WithBattery != nil {
		doc.WithBattery = &a.WithBattery.Totals
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
