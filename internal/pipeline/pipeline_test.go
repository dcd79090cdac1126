package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-calculator/internal/config"
	"solar-calculator/internal/model"
	"solar-calculator/internal/series"
)

func clearskyConfig() *config.Config {
	return &config.Config{
		System: config.SystemConfig{
			CapacityKW: 6.6,
			Cost:       8500,
			Latitude:   -31.95,
			Longitude:  115.86,
			LossesPct:  14,
		},
		Tariff: config.TariffConfig{
			ImportRatePerKWh:   0.31,
			ExportRatePerKWh:   0.02,
			SupplyChargePerDay: 1.10,
		},
		Provider:  config.ProviderConfig{Source: "clearsky"},
		OutputDir: "solar_results",
	}
}

func usageWindow(start time.Time, hours int) []model.HourlySample {
	out := make([]model.HourlySample, hours)
	for i := range out {
		out[i] = model.HourlySample{
			Timestamp:      start.Add(time.Duration(i) * time.Hour),
			ConsumptionKWh: 1,
		}
	}
	return out
}

func TestRunSolarOnly(t *testing.T) {
	p, err := New(clearskyConfig())
	require.NoError(t, err)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	analysis, err := p.Run(usageWindow(start, 48))
	require.NoError(t, err)

	require.NotNil(t, analysis.Summary)
	assert.Nil(t, analysis.WithBattery)
	assert.InDelta(t, 48.0, analysis.SolarOnly.Totals.ConsumptionKWh, 1e-9)
	assert.Greater(t, analysis.SolarOnly.Totals.ProductionKWh, 0.0)
	assert.Greater(t, analysis.Summary.SolarOnly.Savings, 0.0)
	assert.NotEmpty(t, analysis.Monthly)
}

func TestRunWithBattery(t *testing.T) {
	cfg := clearskyConfig()
	cfg.Battery = &config.BatteryConfig{
		CapacityKWh:            13.5,
		MaxChargeRateKWh:       5,
		MaxDischargeRateKWh:    5,
		RoundTripEfficiency:    0.9,
		UsableDepthOfDischarge: 1.0,
	}
	p, err := New(cfg)
	require.NoError(t, err)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	analysis, err := p.Run(usageWindow(start, 24*7))
	require.NoError(t, err)

	require.NotNil(t, analysis.WithBattery)
	require.NotNil(t, analysis.Summary.WithBattery)
	assert.Greater(t, analysis.WithBattery.Totals.BatteryChargeKWh, 0.0)
	// Both scenarios priced over the same series.
	assert.Equal(t, analysis.SolarOnly.Totals.ConsumptionKWh, analysis.WithBattery.Totals.ConsumptionKWh)
}

func TestRunRejectsMalformedUsage(t *testing.T) {
	p, err := New(clearskyConfig())
	require.NoError(t, err)

	_, err = p.Run(nil)
	assert.Error(t, err)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	usage := usageWindow(start, 10)
	usage[5].ConsumptionKWh = -1
	_, err = p.Run(usage)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 5, vErr.Index)
}

func TestAlignWindow(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	production := usageWindow(start, 100)

	consumption := usageWindow(start.Add(10*time.Hour), 20)
	got, err := alignWindow(production, consumption)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, consumption[0].Timestamp, got[0].Timestamp)

	// Window running off the end of the production series.
	consumption = usageWindow(start.Add(90*time.Hour), 20)
	_, err = alignWindow(production, consumption)
	assert.Error(t, err)

	// Window starting before the production series.
	consumption = usageWindow(start.Add(-5*time.Hour), 20)
	_, err = alignWindow(production, consumption)
	assert.Error(t, err)
}

func TestRebaseReadingsDSTEnd(t *testing.T) {
	syd, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// Clocks went back 03:00 -> 02:00 on 2024-04-07, so the export carries
	// the 02:00 wall hour twice. The parser sorts by naive timestamp, which
	// puts each repeated reading right after its first pass.
	var naive []series.RawReading
	day := time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 24*60; m += 30 {
		ts := day.Add(time.Duration(m) * time.Minute)
		naive = append(naive, series.RawReading{Timestamp: ts, UsageKWh: 0.5, Actual: true})
		if ts.Hour() == 2 {
			naive = append(naive, series.RawReading{Timestamp: ts, UsageKWh: 0.5, Actual: true})
		}
	}
	require.Len(t, naive, 50)

	rebaseReadings(naive, syd)

	// The local day spans 25 absolute hours; every one of them must have a
	// full pair of readings, including both passes of the repeated hour.
	start := time.Date(2024, 4, 7, 0, 0, 0, 0, syd)
	samples, err := series.Normalize(naive, start, 25)
	require.NoError(t, err)
	require.Len(t, samples, 25)
	for i, s := range samples {
		assert.InDelta(t, 1.0, s.ConsumptionKWh, 1e-9, "hour %d", i)
	}
}

func TestNewResolvesTimezone(t *testing.T) {
	cfg := clearskyConfig()
	cfg.System.Timezone = "Not/AZone"
	_, err := New(cfg)
	assert.Error(t, err)
}
