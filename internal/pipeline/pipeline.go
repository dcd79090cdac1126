package pipeline

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"solar-calculator/internal/config"
	"solar-calculator/internal/data"
	"solar-calculator/internal/finance"
	"solar-calculator/internal/model"
	"solar-calculator/internal/report"
	"solar-calculator/internal/series"
	"solar-calculator/internal/simulate"
	"solar-calculator/internal/solar"
)

// Pipeline runs a full analysis: normalize usage, obtain production, simulate
// both scenarios, price them and emit artifacts. The CLI and the HTTP API
// share this path so they cannot drift.
type Pipeline struct {
	cfg *config.Config
	loc *time.Location
}

func New(cfg *config.Config) (*Pipeline, error) {
	if err := cfg.ResolveSite(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.System.Timezone, err)
	}
	return &Pipeline{cfg: cfg, loc: loc}, nil
}

// LoadUsage reads a meter export (or a previously normalized hourly file) and
// returns one calendar year of hourly consumption.
func (p *Pipeline) LoadUsage(path string) ([]model.HourlySample, error) {
	readings, err := data.ParseMeterCSV(path)
	if err != nil {
		return nil, err
	}
	rebaseReadings(readings, p.loc)
	return series.NormalizeYear(readings)
}

// Run analyzes the given consumption series. Production is fetched according
// to the configured provider and aligned hour for hour with consumption.
func (p *Pipeline) Run(consumption []model.HourlySample) (*report.Analysis, error) {
	if err := model.ValidateSeries(consumption); err != nil {
		return nil, err
	}
	samples := consumption
	// Inline production arrives merged with consumption; everything else is
	// fetched for the whole year and aligned onto the consumption window.
	if p.cfg.Provider.Source != "inline" {
		production, err := p.production(consumption[0].Timestamp.Year())
		if err != nil {
			return nil, err
		}
		production, err = alignWindow(production, consumption)
		if err != nil {
			return nil, err
		}
		samples, err = series.Merge(consumption, production)
		if err != nil {
			return nil, err
		}
	}

	inputs := model.AnalysisInputs{
		Samples:    samples,
		Tariff:     p.cfg.Tariff.ToModelParams(),
		SystemCost: p.cfg.System.Cost,
	}
	if p.cfg.Battery != nil {
		bp := p.cfg.Battery.ToModelParams()
		inputs.Battery = &bp
		inputs.BatteryInitialSOCKWh = p.cfg.Battery.InitialSOCKWh
	}

	solarOnly, withBattery, err := simulate.RunScenarios(inputs)
	if err != nil {
		return nil, err
	}

	summary, err := finance.Analyze(solarOnly, withBattery, inputs.Tariff, inputs.SystemCost)
	if err != nil {
		return nil, err
	}

	richest := solarOnly
	if withBattery != nil {
		richest = withBattery
	}

	name := p.cfg.System.Site
	if name == "" {
		name = fmt.Sprintf("%.2fkW system", p.cfg.System.CapacityKW)
	}
	return &report.Analysis{
		GeneratedAt: time.Now().UTC(),
		SystemName:  name,
		SolarOnly:   solarOnly,
		WithBattery: withBattery,
		Summary:     summary,
		Monthly:     finance.MonthlyBreakdown(richest),
	}, nil
}

// Emit writes all configured artifacts for a completed analysis.
func (p *Pipeline) Emit(a *report.Analysis) ([]string, error) {
	return report.NewEmitter(p.cfg.OutputDir).EmitAll(a)
}

// rebaseReadings maps naive meter wall-clock times into loc so they line up
// with the production series. At a DST end the export repeats a wall-clock
// hour and time.Date resolves both passes to the first occurrence; readings
// arrive sorted, so a repeated timestamp is the second pass and belongs one
// hour later.
func rebaseReadings(readings []series.RawReading, loc *time.Location) {
	var prevWall time.Time
	for i := range readings {
		t := readings[i].Timestamp
		local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if i > 0 && t.Equal(prevWall) {
			local = local.Add(time.Hour)
		}
		prevWall = t
		readings[i].Timestamp = local
	}
}

// alignWindow slices a full-year production series down to the hours the
// consumption series covers, so partial-year meter data still analyzes.
func alignWindow(production, consumption []model.HourlySample) ([]model.HourlySample, error) {
	first := consumption[0].Timestamp
	for i := range production {
		if production[i].Timestamp.Equal(first) {
			if i+len(consumption) > len(production) {
				return nil, fmt.Errorf("production series ends %d hours before consumption does",
					i+len(consumption)-len(production))
			}
			return production[i : i+len(consumption)], nil
		}
	}
	return nil, fmt.Errorf("production series does not cover %s", first.Format("2006-01-02 15:04"))
}

func (p *Pipeline) production(year int) ([]model.HourlySample, error) {
	sys := p.cfg.System
	switch p.cfg.Provider.Source {
	case "pvwatts":
		client := data.NewPVWattsClient(p.cfg.Provider.APIKey, p.cfg.Provider.BaseURL)
		resp, err := client.FetchHourly(p.systemParams())
		if err != nil {
			return nil, err
		}
		// Keep the raw response so later runs can use source "file".
		saved := filepath.Join(p.cfg.OutputDir, "pvwatts_response.json")
		if err := data.SavePVWattsJSON(saved, resp); err != nil {
			log.Printf("[Pipeline] could not save provider response: %v", err)
		}
		return data.ProductionSeries(resp, year, p.loc)
	case "file":
		resp, err := data.LoadPVWattsJSON(p.cfg.Provider.ResponseFile)
		if err != nil {
			return nil, fmt.Errorf("load saved production response: %w", err)
		}
		return data.ProductionSeries(resp, year, p.loc)
	case "clearsky":
		log.Printf("[Pipeline] using clear-sky estimate for %.2fkW at (%.4f, %.4f)",
			sys.CapacityKW, sys.Latitude, sys.Longitude)
		est, err := solar.NewEstimator(solar.EstimatorParams{
			CapacityKW: sys.CapacityKW,
			LossesPct:  sys.LossesPct,
			Latitude:   sys.Latitude,
			Longitude:  sys.Longitude,
		}, p.loc)
		if err != nil {
			return nil, err
		}
		return est.HourlyYear(year), nil
	default:
		return nil, fmt.Errorf("unsupported provider source: %q", p.cfg.Provider.Source)
	}
}

func (p *Pipeline) systemParams() data.SystemParams {
	sys := p.cfg.System
	return data.SystemParams{
		CapacityKW: sys.CapacityKW,
		ModuleType: sys.ModuleType,
		LossesPct:  sys.LossesPct,
		ArrayType:  sys.ArrayType,
		TiltDeg:    sys.TiltDeg,
		AzimuthDeg: sys.AzimuthDeg,
		Latitude:   sys.Latitude,
		Longitude:  sys.Longitude,
	}
}
