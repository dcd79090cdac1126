package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"solar-calculator/internal/api/metrics"
	"solar-calculator/internal/api/models"
	"solar-calculator/internal/config"
	"solar-calculator/internal/data"
	"solar-calculator/internal/model"
	"solar-calculator/internal/pipeline"
	"solar-calculator/internal/report"
)

// AnalyzeHandler handles analysis requests
type AnalyzeHandler struct{}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler() *AnalyzeHandler {
	return &AnalyzeHandler{}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	start := time.Now()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, start, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	samples, err := buildUsage(req.Usage)
	if err != nil {
		h.fail(c, start, http.StatusBadRequest, "INVALID_USAGE", err.Error(), nil)
		return
	}

	cfg, err := buildConfig(req)
	if err != nil {
		h.fail(c, start, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), nil)
		return
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		h.fail(c, start, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), nil)
		return
	}

	analysis, err := p.Run(samples)
	if err != nil {
		if _, ok := err.(*data.PVWattsError); ok {
			metrics.ObserveProviderCall(cfg.Provider.Source, "error")
		}
		h.mapRunError(c, start, err)
		return
	}

	metrics.ObserveProviderCall(cfg.Provider.Source, "success")
	metrics.ObserveAnalyze("success", time.Since(start))
	c.JSON(http.StatusOK, buildResponse(analysis, req.Options.IncludeHourly))
}

func (h *AnalyzeHandler) fail(c *gin.Context, start time.Time, status int, code, msg string, details map[string]interface{}) {
	metrics.ObserveAnalyze("error", time.Since(start))
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: msg, Details: details},
	})
}

// mapRunError translates pipeline errors onto the HTTP error taxonomy.
func (h *AnalyzeHandler) mapRunError(c *gin.Context, start time.Time, err error) {
	if pvErr, ok := err.(*data.PVWattsError); ok {
		statusCode := http.StatusBadRequest
		if pvErr.StatusCode == http.StatusForbidden || pvErr.StatusCode == http.StatusUnauthorized {
			statusCode = http.StatusUnauthorized
		} else if pvErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		h.fail(c, start, statusCode, pvErr.Code, pvErr.Message, map[string]interface{}{
			"status_code": pvErr.StatusCode,
			"retry_after": pvErr.RetryAfter,
		})
		return
	}
	if vErr, ok := err.(*model.ValidationError); ok {
		h.fail(c, start, http.StatusBadRequest, "INVALID_DATA", vErr.Error(), map[string]interface{}{
			"index": vErr.Index,
			"field": vErr.Field,
		})
		return
	}
	h.fail(c, start, http.StatusInternalServerError, "ANALYSIS_ERROR", err.Error(), nil)
}

func buildUsage(usage []models.UsageSample) ([]model.HourlySample, error) {
	out := make([]model.HourlySample, 0, len(usage))
	for i, u := range usage {
		ts, err := time.Parse(time.RFC3339, u.Timestamp)
		if err != nil {
			return nil, &model.ValidationError{
				Index: i, Field: "timestamp", Msg: "must be RFC3339", Timestamp: time.Time{},
			}
		}
		out = append(out, model.HourlySample{
			Timestamp:      ts,
			ConsumptionKWh: u.ConsumptionKWh,
			ProductionKWh:  u.ProductionKWh,
			Estimated:      u.Estimated,
		})
	}
	return out, nil
}

func buildConfig(req models.AnalyzeRequest) (*config.Config, error) {
	cfg := &config.Config{
		System: config.SystemConfig{
			CapacityKW: req.System.CapacityKW,
			Cost:       req.System.Cost,
			Site:       req.System.Site,
			Latitude:   req.System.Latitude,
			Longitude:  req.System.Longitude,
			Timezone:   req.System.Timezone,
			TiltDeg:    req.System.TiltDeg,
			AzimuthDeg: req.System.AzimuthDeg,
			LossesPct:  req.System.LossesPct,
			ModuleType: req.System.ModuleType,
			ArrayType:  req.System.ArrayType,
		},
		Tariff: config.TariffConfig{
			ImportRatePerKWh:   req.Tariff.ImportRatePerKWh,
			ExportRatePerKWh:   req.Tariff.ExportRatePerKWh,
			PeakExportRate:     req.Tariff.PeakExportRate,
			PeakStartHour:      req.Tariff.PeakStartHour,
			PeakEndHour:        req.Tariff.PeakEndHour,
			SupplyChargePerDay: req.Tariff.SupplyChargePerDay,
		},
		Provider: config.ProviderConfig{
			Source: req.Provider.Source,
			APIKey: req.Provider.APIKey,
		},
		OutputDir: "solar_results",
	}
	if cfg.Provider.Source == "" {
		cfg.Provider.Source = "clearsky"
	}

	if req.Battery != nil {
		bc := config.BatteryConfig{
			Name:                   req.Battery.Name,
			CapacityKWh:            req.Battery.CapacityKWh,
			MaxChargeRateKWh:       req.Battery.MaxChargeRateKWh,
			MaxDischargeRateKWh:    req.Battery.MaxDischargeRateKWh,
			RoundTripEfficiency:    req.Battery.RoundTripEfficiency,
			UsableDepthOfDischarge: req.Battery.UsableDepthOfDischarge,
			InitialSOCKWh:          req.Battery.InitialSOCKWh,
		}
		if req.Battery.BatteryFile != "" {
			loaded, err := config.LoadBatteryPreset(presetPath(req.Battery.BatteryFile))
			if err != nil {
				return nil, err
			}
			bc = config.MergeBattery(loaded, bc)
		}
		if bc.CapacityKWh > 0 {
			cfg.Battery = &bc
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func presetPath(name string) string {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		dir = "./batteries"
	}
	return filepath.Join(dir, name+".yaml")
}

func buildResponse(a *report.Analysis, includeHourly bool) models.AnalyzeResponse {
	resp := models.AnalyzeResponse{
		Status:          "completed",
		Summary:         a.Summary,
		SolarOnlyTotals: a.SolarOnly.Totals,
		Monthly:         a.Monthly,
	}
	if a.WithBattery != nil {
		resp.WithBatteryTotals = &a.WithBattery.Totals
	}
	if includeHourly {
		richest := a.SolarOnly
		if a.WithBattery != nil {
			richest = a.WithBattery
		}
		resp.Hourly = make([]models.HourRow, len(richest.Hours))
		for i, hr := range richest.Hours {
			resp.Hourly[i] = models.HourRow{
				Index:               hr.Index,
				Timestamp:           hr.Timestamp,
				ConsumptionKWh:      hr.ConsumptionKWh,
				ProductionKWh:       hr.ProductionKWh,
				Action:              string(hr.Action),
				SelfConsumedKWh:     hr.SelfConsumedKWh,
				GridExportKWh:       hr.GridExportKWh,
				GridImportKWh:       hr.GridImportKWh,
				BatteryChargeKWh:    hr.BatteryChargeKWh,
				BatteryDischargeKWh: hr.BatteryDischargeKWh,
				BatterySOCEndKWh:    hr.BatterySOCEndKWh,
			}
		}
	}
	return resp
}
