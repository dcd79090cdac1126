package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"solar-calculator/internal/model"
	"solar-calculator/internal/series"
)

// Retailer meter exports carry a few lines of account metadata before the
// real header row.
const meterHeaderSkipRows = 5

// Column names as they appear in the export.
const (
	colDate   = "Date"
	colTime   = "Time"
	colUsage  = "Usage already billed"
	colStatus = "Meter reading status"
)

// ParseMeterCSV reads a retailer meter export (half-hourly or hourly rows)
// into raw readings for the normalizer. Dates are DD/MM/YYYY or YYYY-MM-DD;
// rows with a "Meter reading status" other than Actual are kept but flagged.
func ParseMeterCSV(path string) ([]series.RawReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open meter file: %w", err)
	}
	defer f.Close()
	return parseMeterReadings(f)
}

func parseMeterReadings(r io.Reader) ([]series.RawReading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	// Skip account metadata rows ahead of the header.
	var header []string
	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("meter file has no header row")
		}
		if err != nil {
			return nil, fmt.Errorf("read meter file: %w", err)
		}
		if isMeterHeader(rec) {
			header = rec
			break
		}
		skipped++
		if skipped > meterHeaderSkipRows {
			return nil, fmt.Errorf("meter file header not found within first %d rows", meterHeaderSkipRows+1)
		}
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	lastRequired := 0
	for _, required := range []string{colDate, colTime, colUsage} {
		col, ok := idx[required]
		if !ok {
			return nil, fmt.Errorf("meter file missing column %q", required)
		}
		if col > lastRequired {
			lastRequired = col
		}
	}

	var out []series.RawReading
	line := skipped + 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read meter file: %w", err)
		}
		line++

		// FieldsPerRecord is disabled, so rows can come in short.
		if len(rec) <= lastRequired {
			return nil, fmt.Errorf("meter file line %d: truncated row (%d of %d fields)",
				line, len(rec), lastRequired+1)
		}
		ts, err := parseMeterTimestamp(rec[idx[colDate]], rec[idx[colTime]])
		if err != nil {
			return nil, fmt.Errorf("meter file line %d: %w", line, err)
		}
		usage, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[colUsage]]), 64)
		if err != nil {
			return nil, fmt.Errorf("meter file line %d: invalid usage %q", line, rec[idx[colUsage]])
		}

		actual := true
		if si, ok := idx[colStatus]; ok && si < len(rec) {
			actual = strings.EqualFold(strings.TrimSpace(rec[si]), "Actual")
		}

		out = append(out, series.RawReading{
			Timestamp: ts,
			UsageKWh:  usage,
			Actual:    actual,
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("meter file contains no readings")
	}
	series.SortReadings(out)
	return out, nil
}

func isMeterHeader(rec []string) bool {
	for _, field := range rec {
		if strings.TrimSpace(field) == colUsage {
			return true
		}
	}
	return false
}

func parseMeterTimestamp(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	for _, layout := range []string{"02/01/2006 15:04", "2006-01-02 15:04"} {
		if ts, err := time.Parse(layout, dateStr+" "+timeStr); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q %q", dateStr, timeStr)
}

// WriteHourlyUsageCSV writes a normalized hourly usage file, the seam the
// simulator-side loaders read back.
func WriteHourlyUsageCSV(path string, samples []model.HourlySample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{colDate, colTime, colUsage, colStatus}); err != nil {
		return err
	}
	for _, s := range samples {
		status := "Actual"
		if s.Estimated {
			status = "Estimated"
		}
		row := []string{
			s.Timestamp.Format("2006-01-02"),
			s.Timestamp.Format("15:04"),
			strconv.FormatFloat(s.ConsumptionKWh, 'f', 3, 64),
			status,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
