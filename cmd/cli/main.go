package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"solar-calculator/internal/config"
	"solar-calculator/internal/data"
	"solar-calculator/internal/pipeline"
	"solar-calculator/internal/series"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "normalize":
		cmdNormalize(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --usage meter_export.csv --config config.yaml")
	fmt.Println("  cli normalize --usage meter_export.csv --out hourly_usage.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze writes hourly ledgers, summary.json, report.xlsx and report.pdf")
	fmt.Println("  - normalize sums half-hourly meter rows into hourly usage")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	usagePath := fs.String("usage", "", "Path to meter export CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "", "Optional: override output directory")
	_ = fs.Parse(args)

	if *usagePath == "" || *cfgPath == "" {
		fmt.Println("--usage and --config are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		fatal(err)
	}

	consumption, err := p.LoadUsage(*usagePath)
	if err != nil {
		fatal(err)
	}

	analysis, err := p.Run(consumption)
	if err != nil {
		fatal(err)
	}

	written, err := p.Emit(analysis)
	if err != nil {
		fatal(err)
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}

	s := analysis.Summary
	fmt.Printf("Baseline annual cost: $%.2f\n", s.BaselineCost)
	fmt.Printf("Solar-only annual cost: $%.2f (saves $%.2f)\n", s.SolarOnly.AnnualCost, s.SolarOnly.Savings)
	if s.WithBattery != nil {
		fmt.Printf("With battery annual cost: $%.2f (saves $%.2f, battery adds $%.2f)\n",
			s.WithBattery.AnnualCost, s.WithBattery.Savings, s.BatteryMarginalSavings)
	}
	if math.IsInf(s.PaybackYears, 1) {
		fmt.Printf("Payback: never (system cost $%.2f, no positive savings)\n", s.SystemCost)
	} else {
		fmt.Printf("Payback: %.1f years on $%.2f\n", s.PaybackYears, s.SystemCost)
	}
}

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	usagePath := fs.String("usage", "", "Path to meter export CSV")
	outPath := fs.String("out", "hourly_usage.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *usagePath == "" {
		fmt.Println("--usage is required")
		os.Exit(2)
	}

	readings, err := data.ParseMeterCSV(*usagePath)
	if err != nil {
		fatal(err)
	}
	samples, err := series.NormalizeYear(readings)
	if err != nil {
		fatal(err)
	}
	if err := data.WriteHourlyUsageCSV(*outPath, samples); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d hourly rows to %s\n", len(samples), *outPath)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
