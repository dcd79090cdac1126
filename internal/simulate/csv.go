package simulate

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteHourlyCSV(path string, hours []HourResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp",
		"consumption_kwh",
		"production_kwh",
		"action",
		"self_consumed_kwh",
		"grid_export_kwh",
		"grid_import_kwh",
		"battery_charge_kwh",
		"battery_discharge_kwh",
		"battery_soc_end_kwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range hours {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Timestamp),
			fmtFloat(r.ConsumptionKWh),
			fmtFloat(r.ProductionKWh),
			string(r.Action),
			fmtFloat(r.SelfConsumedKWh),
			fmtFloat(r.GridExportKWh),
			fmtFloat(r.GridImportKWh),
			fmtFloat(r.BatteryChargeKWh),
			fmtFloat(r.BatteryDischargeKWh),
			fmtFloat(r.BatterySOCEndKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
