package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"solar-calculator/internal/model"
)

// PVWattsClient fetches modeled hourly solar production from NREL's PVWatts
// v8 API.
type PVWattsClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewPVWattsClient creates a new PVWatts API client.
// If baseURL is empty, defaults to "https://developer.nrel.gov".
func NewPVWattsClient(apiKey string, baseURL string) *PVWattsClient {
	if baseURL == "" {
		baseURL = "https://developer.nrel.gov"
	}
	return &PVWattsClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SystemParams defines the PV system sent to PVWatts. Ranges follow the v8
// API documentation.
type SystemParams struct {
	CapacityKW float64 // 0.05 .. 500000
	ModuleType int     // 0 standard, 1 premium, 2 thin film
	LossesPct  float64 // -5 .. 99
	ArrayType  int     // 0..4
	TiltDeg    float64 // 0 .. 90
	AzimuthDeg float64 // 0 .. <360
	Latitude   float64
	Longitude  float64
}

func (p SystemParams) Validate() error {
	if p.CapacityKW < 0.05 || p.CapacityKW > 500000 {
		return fmt.Errorf("system capacity must be between 0.05 and 500000 kW, got %g", p.CapacityKW)
	}
	if p.ModuleType < 0 || p.ModuleType > 2 {
		return fmt.Errorf("module type must be 0 (standard), 1 (premium) or 2 (thin film), got %d", p.ModuleType)
	}
	if p.LossesPct < -5 || p.LossesPct > 99 {
		return fmt.Errorf("system losses must be between -5 and 99 percent, got %g", p.LossesPct)
	}
	if p.ArrayType < 0 || p.ArrayType > 4 {
		return fmt.Errorf("array type must be 0-4, got %d", p.ArrayType)
	}
	if p.TiltDeg < 0 || p.TiltDeg > 90 {
		return fmt.Errorf("tilt angle must be between 0 and 90 degrees, got %g", p.TiltDeg)
	}
	if p.AzimuthDeg < 0 || p.AzimuthDeg >= 360 {
		return fmt.Errorf("azimuth angle must be in [0, 360) degrees, got %g", p.AzimuthDeg)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %g", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %g", p.Longitude)
	}
	return nil
}

// PVWattsResponse is the subset of the v8 JSON response we consume.
type PVWattsResponse struct {
	Errors  []string       `json:"errors,omitempty"`
	Outputs PVWattsOutputs `json:"outputs"`
}

// PVWattsOutputs carries the hourly series (8760 entries) from a
// timeframe=hourly request. AC is in watts.
type PVWattsOutputs struct {
	AC        []float64 `json:"ac"`
	DC        []float64 `json:"dc"`
	POA       []float64 `json:"poa"`
	Tamb      []float64 `json:"tamb"`
	Tcell     []float64 `json:"tcell"`
	ACAnnual  float64   `json:"ac_annual"`
	SolradAnn float64   `json:"solrad_annual"`
}

// PVWattsError represents an error from the PVWatts API.
type PVWattsError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *PVWattsError) Error() string {
	return e.Message
}

// FetchHourly requests one modeled year of hourly production for the given
// system and returns the raw response. Use ProductionSeries to convert it to
// the simulator's sample contract.
func (c *PVWattsClient) FetchHourly(params SystemParams) (*PVWattsResponse, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cache := GetCache()
	if cache != nil {
		key := GenerateCacheKey(params)
		if cached, found := cache.Get(key); found {
			log.Printf("[PVWatts] Cache hit: using cached response with %d hours (capacity=%.2fkW, lat=%.2f, lon=%.2f)",
				len(cached.Outputs.AC), params.CapacityKW, params.Latitude, params.Longitude)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/api/pvwatts/v8.json")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("format", "json")
	q.Set("system_capacity", fmtParam(params.CapacityKW))
	q.Set("module_type", strconv.Itoa(params.ModuleType))
	q.Set("losses", fmtParam(params.LossesPct))
	q.Set("array_type", strconv.Itoa(params.ArrayType))
	q.Set("tilt", fmtParam(params.TiltDeg))
	q.Set("azimuth", fmtParam(params.AzimuthDeg))
	q.Set("lat", fmtParam(params.Latitude))
	q.Set("lon", fmtParam(params.Longitude))
	q.Set("timeframe", "hourly")
	u.RawQuery = q.Encode()

	log.Printf("[PVWatts] Request: GET %s (capacity=%.2fkW, tilt=%.1f, azimuth=%.1f, lat=%.2f, lon=%.2f)",
		u.Path, params.CapacityKW, params.TiltDeg, params.AzimuthDeg, params.Latitude, params.Longitude)

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[PVWatts] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[PVWatts] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, duration)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result PVWattsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("PVWatts reported errors: %v", result.Errors),
		}
	}

	log.Printf("[PVWatts] Success: received %d hourly values (annual AC %.1f kWh)",
		len(result.Outputs.AC), result.Outputs.ACAnnual)

	if cache := GetCache(); cache != nil {
		cache.Set(GenerateCacheKey(params), &result)
	}
	return &result, nil
}

func (c *PVWattsClient) validateAPIKey() error {
	if c.APIKey == "" {
		return &PVWattsError{
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	if len(c.APIKey) < 10 {
		return &PVWattsError{
			Code:    "INVALID_API_KEY_FORMAT",
			Message: "API key appears to be invalid (too short)",
		}
	}
	return nil
}

// ProductionSeries converts a hourly PVWatts response into hourly production
// samples starting at the first hour of the given year. PVWatts AC output is
// in watts; samples are kWh per hour.
func ProductionSeries(resp *PVWattsResponse, year int, loc *time.Location) ([]model.HourlySample, error) {
	if resp == nil || len(resp.Outputs.AC) == 0 {
		return nil, fmt.Errorf("no hourly 'ac' data in PVWatts response outputs")
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	out := make([]model.HourlySample, len(resp.Outputs.AC))
	for i, w := range resp.Outputs.AC {
		kwh := w / 1000
		if kwh < 0 {
			kwh = 0
		}
		out[i] = model.HourlySample{
			Timestamp:     start.Add(time.Duration(i) * time.Hour),
			ProductionKWh: kwh,
		}
	}
	return out, nil
}

func fmtParam(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
