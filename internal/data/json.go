package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadPVWattsJSON reads a previously saved PVWatts response from disk,
// enabling fully offline runs.
func LoadPVWattsJSON(path string) (*PVWattsResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp PVWattsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SavePVWattsJSON writes a raw PVWatts response to disk for later offline
// runs and debugging.
func SavePVWattsJSON(path string, resp *PVWattsResponse) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write response file: %w", err)
	}
	return nil
}
