package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-calculator/internal/api/models"
	"solar-calculator/internal/data"
)

// SitesHandler serves the known-sites catalog
type SitesHandler struct{}

func NewSitesHandler() *SitesHandler {
	return &SitesHandler{}
}

// ListSites handles GET /api/v1/sites
func (h *SitesHandler) ListSites(c *gin.Context) {
	list, err := data.LoadSites(data.GetDefaultSitesPath())
	if err != nil {
		// Fall back to the built-in catalog when no sites file exists.
		list = data.DefaultSites()
	}
	out := make([]models.SiteInfo, 0, len(list.Sites))
	for _, s := range list.Sites {
		out = append(out, models.SiteInfo{
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Timezone:  s.Timezone,
		})
	}
	c.JSON(http.StatusOK, gin.H{"sites": out})
}
