package model

import "errors"

// TariffParams defines flat electricity rates for the analysis horizon.
// An optional peak window pays PeakExportRate for exports whose hour-of-day
// falls in [PeakStartHour, PeakEndHour] inclusive; outside it (or when the
// window is unset) exports earn ExportRate. No time-of-use import modeling.
type TariffParams struct {
	ImportRatePerKWh   float64
	ExportRatePerKWh   float64
	PeakExportRate     float64
	PeakStartHour      int
	PeakEndHour        int
	SupplyChargePerDay float64
}

func (t TariffParams) Validate() error {
	if t.ImportRatePerKWh < 0 {
		return errors.New("ImportRatePerKWh must be >= 0")
	}
	if t.ExportRatePerKWh < 0 {
		return errors.New("ExportRatePerKWh must be >= 0")
	}
	if t.PeakExportRate < 0 {
		return errors.New("PeakExportRate must be >= 0")
	}
	if t.SupplyChargePerDay < 0 {
		return errors.New("SupplyChargePerDay must be >= 0")
	}
	if t.HasPeakWindow() {
		if t.PeakStartHour < 0 || t.PeakStartHour > 23 || t.PeakEndHour < 0 || t.PeakEndHour > 23 {
			return errors.New("peak window hours must be within 0..23")
		}
		if t.PeakStartHour > t.PeakEndHour {
			return errors.New("PeakStartHour must not be after PeakEndHour")
		}
	}
	return nil
}

// HasPeakWindow reports whether a peak feed-in window is configured.
func (t TariffParams) HasPeakWindow() bool {
	return t.PeakExportRate > 0
}

// ExportRateAt returns the feed-in rate for the given hour of day (0..23).
func (t TariffParams) ExportRateAt(hour int) float64 {
	if t.HasPeakWindow() && hour >= t.PeakStartHour && hour <= t.PeakEndHour {
		return t.PeakExportRate
	}
	return t.ExportRatePerKWh
}
