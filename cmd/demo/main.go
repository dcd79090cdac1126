package main

import (
	"fmt"
	"math"
	"time"

	"solar-calculator/internal/finance"
	"solar-calculator/internal/model"
	"solar-calculator/internal/simulate"
	"solar-calculator/internal/solar"
)

// Runs a self-contained year: clear-sky production for a 6.6kW system in
// Perth against a synthetic household load, with and without a battery.
func main() {
	loc, err := time.LoadLocation("Australia/Perth")
	if err != nil {
		loc = time.UTC
	}

	est, err := solar.NewEstimator(solar.EstimatorParams{
		CapacityKW: 6.6,
		LossesPct:  14,
		Latitude:   -31.95,
		Longitude:  115.86,
	}, loc)
	if err != nil {
		panic(err)
	}

	year := time.Now().Year() - 1
	samples := est.HourlyYear(year)
	for i := range samples {
		samples[i].ConsumptionKWh = syntheticLoad(samples[i].Timestamp)
	}

	tariff := model.TariffParams{
		ImportRatePerKWh:   0.31,
		ExportRatePerKWh:   0.02,
		PeakExportRate:     0.10,
		PeakStartHour:      15,
		PeakEndHour:        21,
		SupplyChargePerDay: 1.10,
	}

	eng := simulate.New()

	solarOnly, err := eng.Run(samples, nil)
	if err != nil {
		panic(err)
	}

	batt, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:            13.5,
		MaxChargeRateKWh:       5,
		MaxDischargeRateKWh:    5,
		RoundTripEfficiency:    0.9,
		UsableDepthOfDischarge: 1.0,
	}, 0)
	if err != nil {
		panic(err)
	}
	withBattery, err := eng.Run(samples, batt)
	if err != nil {
		panic(err)
	}

	const systemCost = 14500.0
	summary, err := finance.Analyze(solarOnly, withBattery, tariff, systemCost)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Year %d, %d hours simulated\n", year, len(samples))
	fmt.Printf("Consumption %.0f kWh, production %.0f kWh\n",
		solarOnly.Totals.ConsumptionKWh, solarOnly.Totals.ProductionKWh)
	fmt.Printf("Baseline:     $%.2f/year\n", summary.BaselineCost)
	fmt.Printf("Solar only:   $%.2f/year (saves $%.2f)\n",
		summary.SolarOnly.AnnualCost, summary.SolarOnly.Savings)
	fmt.Printf("With battery: $%.2f/year (saves $%.2f, battery adds $%.2f)\n",
		summary.WithBattery.AnnualCost, summary.WithBattery.Savings, summary.BatteryMarginalSavings)
	if summary.Recoverable {
		fmt.Printf("Payback: %.1f years on $%.0f\n", summary.PaybackYears, summary.SystemCost)
	} else {
		fmt.Printf("Payback: never on $%.0f\n", summary.SystemCost)
	}
}

// syntheticLoad shapes a household day: morning and evening peaks over a
// small overnight base, slightly higher in summer and winter months.
func syntheticLoad(ts time.Time) float64 {
	base := 0.35
	hour := float64(ts.Hour())
	morning := 0.8 * math.Exp(-math.Pow(hour-7.5, 2)/4)
	evening := 1.4 * math.Exp(-math.Pow(hour-19, 2)/6)

	seasonal := 1.0
	switch ts.Month() {
	case time.January, time.February, time.July, time.August:
		seasonal = 1.25
	case time.December, time.June:
		seasonal = 1.15
	}
	return (base + morning + evening) * seasonal
}
