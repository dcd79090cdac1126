package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"solar-calculator/internal/data"
	"solar-calculator/internal/model"
)

// Config is the on-disk configuration shape (YAML). It replaces the
// interactive prompts of a manual workflow: the caller assembles it once and
// the pipeline reads nothing from ambient process state.
type Config struct {
	System SystemConfig `yaml:"system"`

	// Optional: load battery parameters from a separate YAML preset.
	// If both BatteryFile and Battery are provided, Battery overrides
	// BatteryFile. Leave both unset for a solar-only analysis.
	BatteryFile string         `yaml:"battery_file"`
	Battery     *BatteryConfig `yaml:"battery"`

	Tariff   TariffConfig   `yaml:"tariff"`
	Provider ProviderConfig `yaml:"provider"`

	OutputDir string `yaml:"output_dir"`
	SitesFile string `yaml:"sites_file"`
}

type SystemConfig struct {
	CapacityKW float64 `yaml:"capacity_kw"`
	Cost       float64 `yaml:"cost"`

	// Site resolves coordinates from the sites file; explicit
	// latitude/longitude take precedence.
	Site      string  `yaml:"site"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`

	TiltDeg    float64 `yaml:"tilt_deg"`
	AzimuthDeg float64 `yaml:"azimuth_deg"`
	LossesPct  float64 `yaml:"losses_pct"`
	ModuleType int     `yaml:"module_type"`
	ArrayType  int     `yaml:"array_type"`
}

type BatteryConfig struct {
	Name                   string  `yaml:"name"`
	CapacityKWh            float64 `yaml:"capacity_kwh"`
	MaxChargeRateKWh       float64 `yaml:"max_charge_rate_kwh"`
	MaxDischargeRateKWh    float64 `yaml:"max_discharge_rate_kwh"`
	RoundTripEfficiency    float64 `yaml:"round_trip_efficiency"`
	UsableDepthOfDischarge float64 `yaml:"usable_depth_of_discharge"`
	InitialSOCKWh          float64 `yaml:"initial_soc_kwh"`
}

type TariffConfig struct {
	ImportRatePerKWh   float64 `yaml:"import_rate_per_kwh"`
	ExportRatePerKWh   float64 `yaml:"export_rate_per_kwh"`
	PeakExportRate     float64 `yaml:"peak_export_rate"`
	PeakStartHour      int     `yaml:"peak_start_hour"`
	PeakEndHour        int     `yaml:"peak_end_hour"`
	SupplyChargePerDay float64 `yaml:"supply_charge_per_day"`
}

// ProviderConfig selects the production source.
// Source is "pvwatts" (live API), "file" (saved PVWatts response),
// "clearsky" (offline estimator) or "inline" (production values supplied
// alongside consumption, no fetch).
type ProviderConfig struct {
	Source       string `yaml:"source"`
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	ResponseFile string `yaml:"response_file"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.OutputDir == "" {
		c.OutputDir = "solar_results"
	}
	// A zero-capacity battery contributes nothing, so treat it as no battery
	// rather than rejecting the config.
	if c.Battery != nil && c.Battery.CapacityKWh == 0 {
		c.Battery = nil
	}
	if c.Provider.Source == "" {
		c.Provider.Source = "clearsky"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the provided path if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := LoadBatteryPreset(batteryPath)
		if err != nil {
			return nil, err
		}
		if c.Battery == nil {
			c.Battery = &loaded
		} else {
			merged := MergeBattery(loaded, *c.Battery)
			c.Battery = &merged
		}
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.System.CapacityKW <= 0 {
		return errors.New("system.capacity_kw must be > 0")
	}
	if c.System.Cost < 0 {
		return errors.New("system.cost must be >= 0")
	}
	switch c.Provider.Source {
	case "pvwatts":
		if c.Provider.APIKey == "" {
			return errors.New("provider.api_key is required for source pvwatts")
		}
	case "file":
		if c.Provider.ResponseFile == "" {
			return errors.New("provider.response_file is required for source file")
		}
	case "clearsky":
	case "inline":
	default:
		return fmt.Errorf("unsupported provider.source: %q", c.Provider.Source)
	}
	// Inline production carries its own values, so coordinates are only
	// needed when production has to be modeled.
	if c.Provider.Source != "inline" &&
		c.System.Site == "" && c.System.Latitude == 0 && c.System.Longitude == 0 {
		return errors.New("system requires a site name or latitude/longitude")
	}
	// Validate battery params by constructing a model.Battery.
	if c.Battery != nil {
		if _, err := model.NewBattery(c.Battery.ToModelParams(), c.Battery.InitialSOCKWh); err != nil {
			return fmt.Errorf("battery config invalid: %w", err)
		}
	}
	if err := c.Tariff.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("tariff config invalid: %w", err)
	}
	return nil
}

// ResolveSite fills latitude/longitude/timezone from the sites file when a
// site name is configured and no explicit coordinates are given.
func (c *Config) ResolveSite() error {
	if c.System.Site == "" || c.System.Latitude != 0 || c.System.Longitude != 0 {
		return nil
	}
	sitesPath := c.SitesFile
	if sitesPath == "" {
		sitesPath = data.GetDefaultSitesPath()
	}
	list, err := data.LoadSites(sitesPath)
	if err != nil {
		return fmt.Errorf("resolve site %q: %w", c.System.Site, err)
	}
	site, ok := list.Find(c.System.Site)
	if !ok {
		return fmt.Errorf("site %q not found in %s", c.System.Site, sitesPath)
	}
	c.System.Latitude = site.Latitude
	c.System.Longitude = site.Longitude
	if c.System.Timezone == "" {
		c.System.Timezone = site.Timezone
	}
	return nil
}

// Location returns the configured timezone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.System.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.System.Timezone)
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:            b.CapacityKWh,
		MaxChargeRateKWh:       b.MaxChargeRateKWh,
		MaxDischargeRateKWh:    b.MaxDischargeRateKWh,
		RoundTripEfficiency:    b.RoundTripEfficiency,
		UsableDepthOfDischarge: b.UsableDepthOfDischarge,
	}
}

func (t TariffConfig) ToModelParams() model.TariffParams {
	return model.TariffParams{
		ImportRatePerKWh:   t.ImportRatePerKWh,
		ExportRatePerKWh:   t.ExportRatePerKWh,
		PeakExportRate:     t.PeakExportRate,
		PeakStartHour:      t.PeakStartHour,
		PeakEndHour:        t.PeakEndHour,
		SupplyChargePerDay: t.SupplyChargePerDay,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryPreset reads a standalone battery YAML file.
func LoadBatteryPreset(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// This is used when loading a battery preset and then applying explicit
// overrides from the main config.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.MaxChargeRateKWh != 0 {
		out.MaxChargeRateKWh = override.MaxChargeRateKWh
	}
	if override.MaxDischargeRateKWh != 0 {
		out.MaxDischargeRateKWh = override.MaxDischargeRateKWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	if override.UsableDepthOfDischarge != 0 {
		out.UsableDepthOfDischarge = override.UsableDepthOfDischarge
	}
	if override.InitialSOCKWh != 0 {
		out.InitialSOCKWh = override.InitialSOCKWh
	}
	return out
}
