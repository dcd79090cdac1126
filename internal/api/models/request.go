package models

// AnalyzeRequest represents the request body for running an analysis
type AnalyzeRequest struct {
	Usage    []UsageSample   `json:"usage" binding:"required"`
	System   SystemRequest   `json:"system" binding:"required"`
	Battery  *BatteryRequest `json:"battery,omitempty"`
	Tariff   TariffRequest   `json:"tariff" binding:"required"`
	Provider ProviderRequest `json:"provider,omitempty"`
	Options  AnalyzeOptions  `json:"options,omitempty"`
}

// UsageSample is one hour of metered consumption. ProductionKWh is only
// read when the provider source is "inline".
type UsageSample struct {
	Timestamp      string  `json:"timestamp" binding:"required"` // RFC3339
	ConsumptionKWh float64 `json:"consumption_kwh"`
	ProductionKWh  float64 `json:"production_kwh,omitempty"`
	Estimated      bool    `json:"estimated,omitempty"`
}

// SystemRequest defines the PV system under analysis
type SystemRequest struct {
	CapacityKW float64 `json:"capacity_kw" binding:"required"`
	Cost       float64 `json:"cost"`
	Site       string  `json:"site,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
	TiltDeg    float64 `json:"tilt_deg,omitempty"`
	AzimuthDeg float64 `json:"azimuth_deg,omitempty"`
	LossesPct  float64 `json:"losses_pct,omitempty"`
	ModuleType int     `json:"module_type,omitempty"`
	ArrayType  int     `json:"array_type,omitempty"`
}

// BatteryRequest defines battery parameters; battery_file names a preset that
// the explicit fields override
type BatteryRequest struct {
	BatteryFile            string  `json:"battery_file,omitempty"`
	Name                   string  `json:"name,omitempty"`
	CapacityKWh            float64 `json:"capacity_kwh"`
	MaxChargeRateKWh       float64 `json:"max_charge_rate_kwh"`
	MaxDischargeRateKWh    float64 `json:"max_discharge_rate_kwh"`
	RoundTripEfficiency    float64 `json:"round_trip_efficiency"`
	UsableDepthOfDischarge float64 `json:"usable_depth_of_discharge"`
	InitialSOCKWh          float64 `json:"initial_soc_kwh,omitempty"`
}

// TariffRequest defines the retail tariff
type TariffRequest struct {
	ImportRatePerKWh   float64 `json:"import_rate_per_kwh" binding:"required"`
	ExportRatePerKWh   float64 `json:"export_rate_per_kwh"`
	PeakExportRate     float64 `json:"peak_export_rate,omitempty"`
	PeakStartHour      int     `json:"peak_start_hour,omitempty"`
	PeakEndHour        int     `json:"peak_end_hour,omitempty"`
	SupplyChargePerDay float64 `json:"supply_charge_per_day"`
}

// ProviderRequest selects the production source; the API key comes from the
// request so the server holds no credentials
type ProviderRequest struct {
	Source string `json:"source,omitempty"` // "pvwatts", "clearsky" or "inline", default clearsky
	APIKey string `json:"api_key,omitempty"`
}

// AnalyzeOptions contains optional analysis parameters
type AnalyzeOptions struct {
	IncludeHourly bool `json:"include_hourly,omitempty"` // default: false
}
