package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"solar-calculator/internal/api/models"
	"solar-calculator/internal/config"
)

// BatteryHandler handles battery preset requests
type BatteryHandler struct {
	batteryDir string
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler() *BatteryHandler {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		dir = "./batteries"
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	return &BatteryHandler{batteryDir: dir}
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		// No preset directory is fine; the API accepts inline batteries.
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.batteryDir, entry.Name())
		preset, err := config.LoadBatteryPreset(path)
		if err != nil {
			continue // Skip invalid files
		}

		id := strings.TrimSuffix(entry.Name(), ".yaml")
		name := preset.Name
		if name == "" {
			name = id
		}
		batteries = append(batteries, models.BatteryInfo{
			ID:   id,
			Name: name,
			File: path,
			Specs: models.BatterySpecs{
				CapacityKWh:         preset.CapacityKWh,
				MaxDischargeRateKWh: preset.MaxDischargeRateKWh,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}
