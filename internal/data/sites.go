package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Site is a named location a config can reference instead of raw
// coordinates.
type Site struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"` // IANA name, e.g. "Australia/Perth"
}

// SiteList represents a collection of sites.
type SiteList struct {
	Sites []Site `json:"sites"`
}

// LoadSites loads sites from a JSON file.
func LoadSites(filePath string) (*SiteList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}

	var list SiteList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}
	return &list, nil
}

// SaveSites saves sites to a JSON file.
func SaveSites(list *SiteList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sites: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write sites file: %w", err)
	}
	return nil
}

// Find returns the site with the given name, case-insensitively.
func (l *SiteList) Find(name string) (Site, bool) {
	for _, s := range l.Sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}

// GetDefaultSitesPath returns the default path for the sites file.
func GetDefaultSitesPath() string {
	if path := os.Getenv("SITES_FILE"); path != "" {
		return path
	}
	return "./data/sites.json"
}

// DefaultSites returns the built-in site registry the init command writes.
func DefaultSites() *SiteList {
	return &SiteList{Sites: []Site{
		{Name: "Perth", Latitude: -32.03, Longitude: 115.98, Timezone: "Australia/Perth"},
		{Name: "Sydney", Latitude: -33.87, Longitude: 151.21, Timezone: "Australia/Sydney"},
		{Name: "Melbourne", Latitude: -37.81, Longitude: 144.96, Timezone: "Australia/Melbourne"},
		{Name: "Adelaide", Latitude: -34.93, Longitude: 138.60, Timezone: "Australia/Adelaide"},
		{Name: "Brisbane", Latitude: -27.47, Longitude: 153.03, Timezone: "Australia/Brisbane"},
	}}
}
