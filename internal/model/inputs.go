package model

// AnalysisInputs is the canonical "inputs to the system" object: the aligned
// hourly series plus battery, tariff and cost parameters. The caller
// assembles it once and passes it into the pipeline; nothing inside the CORE
// reads ambient process state.
type AnalysisInputs struct {
	Samples []HourlySample

	// Battery is nil for a solar-only analysis.
	Battery              *BatteryParams
	BatteryInitialSOCKWh float64

	Tariff     TariffParams
	SystemCost float64
}
