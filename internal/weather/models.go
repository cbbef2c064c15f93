package weather

import (
	"encoding/json"
	"strings"
	"time"
)

// Location identifies the place a report is requested for.
// City must be provided; Country is an optional ISO 3166-1 alpha-2 code.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Query returns the provider query string: "city,country" or just "city".
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Key returns a canonical string key for indexing this location in stores.
// It ignores case and surrounding whitespace.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.City)) + ":" + strings.ToUpper(strings.TrimSpace(l.Country))
}

// Coordinates of the reporting station.
type Coordinates struct {
	Lat json.Number `json:"lat"`
	Lon json.Number `json:"lon"`
}

type PlaceInfo struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

type Temperature struct {
	CurrentC   json.Number `json:"current_c"`
	FeelsLikeC json.Number `json:"feels_like_c"`
	MinC       json.Number `json:"min_c"`
	MaxC       json.Number `json:"max_c"`
}

type Wind struct {
	SpeedMS      json.Number `json:"speed_ms"`
	DirectionDeg json.Number `json:"direction_deg"`
	GustMS       json.Number `json:"gust_ms"`
}

type Clouds struct {
	CoveragePercent json.Number `json:"coverage_percent"`
}

type Conditions struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Precipitation struct {
	Rain1hMM json.Number `json:"rain_1h_mm"`
	Rain3hMM json.Number `json:"rain_3h_mm"`
	Snow1hMM json.Number `json:"snow_1h_mm"`
	Snow3hMM json.Number `json:"snow_3h_mm"`
}

// NormalizedWeather is the plant-relevant view of a provider payload.
// Numbers keep the provider's literal text so reports render them verbatim.
type NormalizedWeather struct {
	Location        PlaceInfo     `json:"location"`
	Temperature     Temperature   `json:"temperature"`
	HumidityPercent json.Number   `json:"humidity_percent"`
	PressureHpa     json.Number   `json:"pressure_hpa"`
	Wind            Wind          `json:"wind"`
	Clouds          Clouds        `json:"clouds"`
	VisibilityM     json.Number   `json:"visibility_m"`
	Weather         Conditions    `json:"weather"`
	Precipitation   Precipitation `json:"precipitation"`
}

// Status is the outcome tag of a Result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the in-band outcome of a weather report request.
type Result struct {
	Status       Status `json:"status"`
	Report       string `json:"report,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// OK reports whether the result carries a report.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func successResult(report string) Result {
	return Result{Status: StatusSuccess, Report: report}
}

func errorResult(msg string) Result {
	return Result{Status: StatusError, ErrorMessage: msg}
}

// Snapshot is a stored report for a location at a point in time.
type Snapshot struct {
	ID        string             `json:"id"`
	Location  Location           `json:"location"`
	Timestamp time.Time          `json:"timestamp"` // always UTC
	Weather   *NormalizedWeather `json:"weather,omitempty"`
	Result    Result             `json:"result"`
}
