package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"solar-calculator/internal/data"
)

const defaultConfig = `system:
  capacity_kw: 6.6
  cost: 8500
  site: Perth
  tilt_deg: 20
  azimuth_deg: 0
  losses_pct: 14
  module_type: 0
  array_type: 0

# battery_file: batteries/powerwall_2.yaml

tariff:
  import_rate_per_kwh: 0.31
  export_rate_per_kwh: 0.02
  peak_export_rate: 0.10
  peak_start_hour: 15
  peak_end_hour: 21
  supply_charge_per_day: 1.10

provider:
  source: clearsky
  # source: pvwatts
  # api_key: YOUR_NREL_API_KEY

output_dir: solar_results
`

const powerwallPreset = `battery:
  name: Powerwall 2
  capacity_kwh: 13.5
  max_charge_rate_kwh: 5
  max_discharge_rate_kwh: 5
  round_trip_efficiency: 0.9
  usable_depth_of_discharge: 1.0
`

// Scaffolds a working directory: default config, battery preset and the
// built-in sites catalog. Existing files are left alone.
func main() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", ".", "Directory to initialize")
	force := fs.Bool("force", false, "Overwrite existing files")
	_ = fs.Parse(os.Args[1:])

	for _, sub := range []string{"batteries", "data", "solar_results"} {
		if err := os.MkdirAll(filepath.Join(*dir, sub), 0o755); err != nil {
			fatal(err)
		}
	}

	writeFile(filepath.Join(*dir, "config.yaml"), defaultConfig, *force)
	writeFile(filepath.Join(*dir, "batteries", "powerwall_2.yaml"), powerwallPreset, *force)

	sitesPath := filepath.Join(*dir, "data", "sites.json")
	if _, err := os.Stat(sitesPath); err == nil && !*force {
		fmt.Printf("Skipping %s (exists)\n", sitesPath)
	} else {
		if err := data.SaveSites(data.DefaultSites(), sitesPath); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %s\n", sitesPath)
	}

	fmt.Println("Ready. Edit config.yaml, then run: cli analyze --usage <meter.csv> --config config.yaml")
}

func writeFile(path, content string, force bool) {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Printf("Skipping %s (exists)\n", path)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
