package simulate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-calculator/internal/model"
)

func start() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func makeSeries(consumption, production []float64) []model.HourlySample {
	out := make([]model.HourlySample, len(consumption))
	for i := range consumption {
		out[i] = model.HourlySample{
			Timestamp:      start().Add(time.Duration(i) * time.Hour),
			ConsumptionKWh: consumption[i],
			ProductionKWh:  production[i],
		}
	}
	return out
}

func testBattery(t *testing.T, socKWh float64) *model.Battery {
	t.Helper()
	b, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:            10,
		MaxChargeRateKWh:       3,
		MaxDischargeRateKWh:    3,
		RoundTripEfficiency:    0.9,
		UsableDepthOfDischarge: 1.0,
	}, socKWh)
	require.NoError(t, err)
	return b
}

func TestSurplusHourWithoutBattery(t *testing.T) {
	res, err := New().Run(makeSeries([]float64{2}, []float64{5}), nil)
	require.NoError(t, err)

	h := res.Hours[0]
	assert.Equal(t, 2.0, h.SelfConsumedKWh)
	assert.Equal(t, 3.0, h.GridExportKWh)
	assert.Equal(t, 0.0, h.GridImportKWh)
	assert.Equal(t, model.ActionIdle, h.Action)
}

func TestSurplusHourChargesBatteryBeforeExport(t *testing.T) {
	// 5 kWh surplus, 3 kWh/h charge rate: battery takes 3, grid gets 2.
	res, err := New().Run(makeSeries([]float64{1}, []float64{6}), testBattery(t, 0))
	require.NoError(t, err)

	h := res.Hours[0]
	assert.Equal(t, 1.0, h.SelfConsumedKWh)
	assert.Equal(t, 3.0, h.BatteryChargeKWh)
	assert.Equal(t, 2.0, h.GridExportKWh)
	assert.InDelta(t, 2.7, h.BatterySOCEndKWh, 1e-9) // 3 drawn * 0.9
	assert.Equal(t, model.ActionCharging, h.Action)
}

func TestDeficitHourDischargesBeforeImport(t *testing.T) {
	// 4 kWh deficit, 3 kWh/h discharge rate from a charged battery.
	res, err := New().Run(makeSeries([]float64{5}, []float64{1}), testBattery(t, 8))
	require.NoError(t, err)

	h := res.Hours[0]
	assert.Equal(t, 3.0, h.BatteryDischargeKWh)
	assert.Equal(t, 1.0, h.GridImportKWh)
	assert.InDelta(t, 4.0, h.SelfConsumedKWh, 1e-9) // 1 solar + 3 battery
	assert.InDelta(t, 5.0, h.BatterySOCEndKWh, 1e-9)
	assert.Equal(t, model.ActionDischarging, h.Action)
}

func TestDeficitHourEmptyBatteryImportsAll(t *testing.T) {
	res, err := New().Run(makeSeries([]float64{4}, []float64{0}), testBattery(t, 0))
	require.NoError(t, err)

	h := res.Hours[0]
	assert.Equal(t, 0.0, h.BatteryDischargeKWh)
	assert.Equal(t, 4.0, h.GridImportKWh)
	assert.Equal(t, model.ActionIdle, h.Action)
}

func TestBalancedHourIsIdle(t *testing.T) {
	res, err := New().Run(makeSeries([]float64{3}, []float64{3}), testBattery(t, 5))
	require.NoError(t, err)

	h := res.Hours[0]
	assert.Equal(t, 3.0, h.SelfConsumedKWh)
	assert.Equal(t, 0.0, h.GridExportKWh)
	assert.Equal(t, 0.0, h.GridImportKWh)
	assert.Equal(t, model.ActionIdle, h.Action)
}

// Energy accounting over a multi-day run: every hour balances
// consumption against self-consumption plus imports, and production against
// self-consumption (net of discharge) plus charge and exports.
func TestEnergyBalanceIdentities(t *testing.T) {
	n := 24 * 14
	consumption := make([]float64, n)
	production := make([]float64, n)
	for i := 0; i < n; i++ {
		hour := i % 24
		consumption[i] = 0.5 + 0.1*float64(hour%7)
		if hour >= 7 && hour <= 17 {
			production[i] = 4 * math.Sin(math.Pi*float64(hour-7)/10)
		}
	}
	samples := makeSeries(consumption, production)

	for name, batt := range map[string]*model.Battery{
		"no battery":   nil,
		"with battery": testBattery(t, 0),
	} {
		t.Run(name, func(t *testing.T) {
			res, err := New().Run(samples, batt)
			require.NoError(t, err)
			require.Len(t, res.Hours, n)

			for _, h := range res.Hours {
				assert.InDelta(t, h.ConsumptionKWh, h.SelfConsumedKWh+h.GridImportKWh, 1e-9,
					"consumption balance at hour %d", h.Index)
				assert.InDelta(t, h.ProductionKWh,
					h.SelfConsumedKWh-h.BatteryDischargeKWh+h.BatteryChargeKWh+h.GridExportKWh, 1e-9,
					"production balance at hour %d", h.Index)
				assert.GreaterOrEqual(t, h.SelfConsumedKWh, 0.0)
				assert.GreaterOrEqual(t, h.GridExportKWh, 0.0)
				assert.GreaterOrEqual(t, h.GridImportKWh, 0.0)
			}

			tot := res.Totals
			assert.InDelta(t, tot.ConsumptionKWh, tot.SelfConsumedKWh+tot.GridImportKWh, 1e-6)
			assert.InDelta(t, tot.ProductionKWh,
				tot.SelfConsumedKWh-tot.BatteryDischargeKWh+tot.BatteryChargeKWh+tot.GridExportKWh, 1e-6)
		})
	}
}

func TestNoProductionNoBatteryImportsEverything(t *testing.T) {
	n := 24
	consumption := make([]float64, n)
	for i := range consumption {
		consumption[i] = 1
	}
	res, err := New().Run(makeSeries(consumption, make([]float64, n)), nil)
	require.NoError(t, err)
	require.Len(t, res.Hours, n)

	for _, h := range res.Hours {
		assert.Equal(t, 0.0, h.SelfConsumedKWh)
		assert.Equal(t, 0.0, h.GridExportKWh)
		assert.Equal(t, 1.0, h.GridImportKWh)
		assert.Equal(t, model.ActionIdle, h.Action)
	}
	assert.InDelta(t, 24.0, res.Totals.GridImportKWh, 1e-9)
	assert.Equal(t, 0.0, res.Totals.SelfConsumedKWh)
	assert.Equal(t, 0.0, res.Totals.GridExportKWh)
}

func TestRunIsDeterministic(t *testing.T) {
	n := 24 * 7
	consumption := make([]float64, n)
	production := make([]float64, n)
	for i := 0; i < n; i++ {
		hour := i % 24
		consumption[i] = 0.4 + 0.2*float64(hour%5)
		if hour >= 8 && hour <= 16 {
			production[i] = 3.5
		}
	}
	samples := makeSeries(consumption, production)

	first, err := New().Run(samples, testBattery(t, 2))
	require.NoError(t, err)
	second, err := New().Run(samples, testBattery(t, 2))
	require.NoError(t, err)

	assert.Equal(t, first.Hours, second.Hours)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, first.FinalSOCKWh, second.FinalSOCKWh)
}

func TestBatteryNeverBeatsPhysics(t *testing.T) {
	n := 24 * 7
	consumption := make([]float64, n)
	production := make([]float64, n)
	for i := 0; i < n; i++ {
		hour := i % 24
		consumption[i] = 1.2
		if hour >= 8 && hour <= 16 {
			production[i] = 5
		}
	}
	samples := makeSeries(consumption, production)

	batt := testBattery(t, 0)
	res, err := New().Run(samples, batt)
	require.NoError(t, err)

	// Discharged energy can never exceed charged energy (losses on charge).
	assert.LessOrEqual(t, res.Totals.BatteryDischargeKWh,
		res.Totals.BatteryChargeKWh+1e-9)
	assert.GreaterOrEqual(t, res.FinalSOCKWh, 0.0)
	assert.LessOrEqual(t, res.FinalSOCKWh, batt.Params.CapacityKWh)
}

func TestBatteryReducesBothImportAndExport(t *testing.T) {
	n := 24 * 7
	consumption := make([]float64, n)
	production := make([]float64, n)
	for i := 0; i < n; i++ {
		hour := i % 24
		consumption[i] = 1.0
		if hour >= 8 && hour <= 16 {
			production[i] = 4
		}
	}
	samples := makeSeries(consumption, production)

	solarOnly, err := New().Run(samples, nil)
	require.NoError(t, err)
	withBattery, err := New().Run(samples, testBattery(t, 0))
	require.NoError(t, err)

	assert.Less(t, withBattery.Totals.GridImportKWh, solarOnly.Totals.GridImportKWh)
	assert.Less(t, withBattery.Totals.GridExportKWh, solarOnly.Totals.GridExportKWh)
	assert.Greater(t, withBattery.Totals.SelfConsumedKWh, solarOnly.Totals.SelfConsumedKWh)
}

func TestRunRejectsMalformedSeriesUpFront(t *testing.T) {
	samples := makeSeries([]float64{1, 1, 1}, []float64{0, 0, 0})
	samples[2].Timestamp = samples[2].Timestamp.Add(2 * time.Hour)

	res, err := New().Run(samples, nil)
	assert.Nil(t, res)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 2, vErr.Index)

	res, err = New().Run(nil, nil)
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestRunScenariosIsolatesBatteryState(t *testing.T) {
	n := 48
	consumption := make([]float64, n)
	production := make([]float64, n)
	for i := 0; i < n; i++ {
		consumption[i] = 1
		if i%24 >= 9 && i%24 <= 15 {
			production[i] = 3
		}
	}
	params := model.BatteryParams{
		CapacityKWh:            10,
		MaxChargeRateKWh:       3,
		MaxDischargeRateKWh:    3,
		RoundTripEfficiency:    0.9,
		UsableDepthOfDischarge: 1.0,
	}
	inputs := model.AnalysisInputs{
		Samples: makeSeries(consumption, production),
		Battery: &params,
	}

	solarOnly, withBattery, err := RunScenarios(inputs)
	require.NoError(t, err)
	require.NotNil(t, withBattery)

	// The solar-only scenario must be identical to a run with no battery
	// configured at all.
	baseline, _, err := RunScenarios(model.AnalysisInputs{Samples: inputs.Samples})
	require.NoError(t, err)
	assert.Equal(t, baseline.Totals, solarOnly.Totals)
	assert.Zero(t, solarOnly.Totals.BatteryChargeKWh)
	assert.NotZero(t, withBattery.Totals.BatteryChargeKWh)
}
