package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTariffValidate(t *testing.T) {
	tariff := TariffParams{ImportRatePerKWh: 0.31, ExportRatePerKWh: 0.02, SupplyChargePerDay: 1.1}
	assert.NoError(t, tariff.Validate())

	assert.Error(t, TariffParams{ImportRatePerKWh: -1}.Validate())
	assert.Error(t, TariffParams{ExportRatePerKWh: -0.01}.Validate())
	assert.Error(t, TariffParams{SupplyChargePerDay: -0.5}.Validate())

	bad := tariff
	bad.PeakExportRate = 0.1
	bad.PeakStartHour = 18
	bad.PeakEndHour = 9
	assert.Error(t, bad.Validate())

	bad.PeakStartHour = -1
	bad.PeakEndHour = 20
	assert.Error(t, bad.Validate())
}

func TestExportRateAt(t *testing.T) {
	tariff := TariffParams{
		ImportRatePerKWh: 0.31,
		ExportRatePerKWh: 0.02,
		PeakExportRate:   0.10,
		PeakStartHour:    15,
		PeakEndHour:      21,
	}

	assert.Equal(t, 0.02, tariff.ExportRateAt(14))
	assert.Equal(t, 0.10, tariff.ExportRateAt(15)) // inclusive start
	assert.Equal(t, 0.10, tariff.ExportRateAt(18))
	assert.Equal(t, 0.10, tariff.ExportRateAt(21)) // inclusive end
	assert.Equal(t, 0.02, tariff.ExportRateAt(22))

	// No window configured: flat rate everywhere.
	flat := TariffParams{ExportRatePerKWh: 0.05}
	assert.Equal(t, 0.05, flat.ExportRateAt(18))
}
