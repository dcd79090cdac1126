package simulate

import "solar-calculator/internal/model"

// RunScenarios runs the solar-only balance and, when a battery is configured,
// the with-battery balance over the same series. Both scenarios see identical
// inputs; a fresh battery is built per run so no SOC leaks between them.
func RunScenarios(inputs model.AnalysisInputs) (solarOnly, withBattery *Result, err error) {
	eng := New()

	solarOnly, err = eng.Run(inputs.Samples, nil)
	if err != nil {
		return nil, nil, err
	}

	if inputs.Battery != nil {
		batt, err := model.NewBattery(*inputs.Battery, inputs.BatteryInitialSOCKWh)
		if err != nil {
			return nil, nil, err
		}
		withBattery, err = eng.Run(inputs.Samples, batt)
		if err != nil {
			return nil, nil, err
		}
	}
	return solarOnly, withBattery, nil
}
