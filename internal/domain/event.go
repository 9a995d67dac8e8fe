package domain

import (
	"context"
	"time"
)

// RawSurveyRecord represents the flat JSON structure produced by the extractor.
// All values arrive as strings because they are lifted directly from CSV cells.
type RawSurveyRecord struct {
	SiteYear   string `json:"site_year"` // catalog ID, e.g. "Cedar2010"
	Code       string `json:"code"`      // site-year code, e.g. "cei10"
	Transect   string `json:"transect"`
	Point      string `json:"point"`
	Lat        string `json:"lat"`
	Lon        string `json:"lon"`
	Elevation  string `json:"elevation"`   // meters
	SurveyedAt string `json:"surveyed_at"` // RFC 3339 or YYYY-MM-DD
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// TidalZone places an elevation relative to the tidal datums.
type TidalZone string

const (
	ZoneSupratidal TidalZone = "supratidal"
	ZoneIntertidal TidalZone = "intertidal"
	ZoneSubtidal   TidalZone = "subtidal"
)

// SurveyPoint is the domain-rich representation after parsing and enrichment.
type SurveyPoint struct {
	ID       string   `json:"id"`
	Ref      string   `json:"ref"` // site-year reference as received
	SiteYear SiteYear `json:"site_year"`
	Transect string   `json:"transect,omitempty"`
	Point    string   `json:"point,omitempty"`
	Geo      Geo      `json:"geo,omitempty"`

	Elevation    float64   `json:"elevation"`
	ElevationMHW float64   `json:"elevation_mhw"` // elevation minus MHW
	ElevationMLW float64   `json:"elevation_mlw"` // elevation minus MLW
	TidalZone    TidalZone `json:"tidal_zone,omitempty"`

	SurveyedAt  time.Time `json:"surveyed_at"`
	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
