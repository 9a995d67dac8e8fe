package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingSiteYear is returned for records that carry neither a
	// site_year nor a code.
	ErrMissingSiteYear = errors.New("record has no site_year or code")

	// ErrInvalidElevation is returned when the elevation cell is empty or not a number.
	ErrInvalidElevation = errors.New("invalid elevation")
)

// ParseRawEvent deserializes a RawEvent's value into a SurveyPoint.
// It expects the flat JSON produced by the extractor. Site-year metadata is
// not attached here; see EnrichSurveyPoint.
func ParseRawEvent(raw RawEvent) (SurveyPoint, error) {
	var rec RawSurveyRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return SurveyPoint{}, fmt.Errorf("parse raw event: %w", err)
	}

	ref := strings.TrimSpace(rec.SiteYear)
	if ref == "" {
		ref = strings.TrimSpace(rec.Code)
	}
	if ref == "" {
		return SurveyPoint{}, fmt.Errorf("parse raw event: %w", ErrMissingSiteYear)
	}

	elevation, err := parseElevation(rec.Elevation)
	if err != nil {
		return SurveyPoint{}, fmt.Errorf("parse raw event: %w", err)
	}

	lat := parseFloatOrZero(rec.Lat)
	lon := parseFloatOrZero(rec.Lon)
	transect := strings.TrimSpace(rec.Transect)
	point := strings.TrimSpace(rec.Point)

	return SurveyPoint{
		ID:         generateID(ref, transect, point, lat, lon),
		Ref:        ref,
		Transect:   transect,
		Point:      point,
		Geo:        Geo{Lat: lat, Lon: lon},
		Elevation:  elevation,
		SurveyedAt: parseSurveyDate(rec.SurveyedAt, raw.Timestamp),
		RawPayload: raw.Value,
	}, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseElevation is strict: a point without a usable elevation cannot be
// placed in a tidal zone. NaN and infinities are rejected because they
// classify as nothing and cannot be encoded as JSON.
func parseElevation(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidElevation)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidElevation, s)
	}
	return v, nil
}

// parseSurveyDate accepts RFC 3339 timestamps or bare dates, falling back to
// the message timestamp.
func parseSurveyDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return fallback.UTC()
}

// generateID produces a deterministic ID from the point's key fields.
// A ref that resolves is hashed as its catalog ID, so a point keeps its ID
// whether it arrives by ID or by code, and gets the code as prefix.
func generateID(ref, transect, point string, lat, lon float64) string {
	s, err := Resolve(ref)
	if err == nil {
		ref = s.ID
	}
	input := fmt.Sprintf("%s|%s|%s|%.6f|%.6f", ref, transect, point, lat, lon)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if err != nil {
		return short
	}
	return strings.ToLower(s.Code) + "-" + short
}

// EnrichSurveyPoint resolves the point's site-year and derives datum-relative
// fields. It fails only when the reference is not in the catalog.
func EnrichSurveyPoint(p SurveyPoint) (SurveyPoint, error) {
	s, err := Resolve(p.Ref)
	if err != nil {
		return p, fmt.Errorf("enrich survey point %s: %w", p.ID, err)
	}
	p.SiteYear = s
	p.ElevationMHW = round(p.Elevation - s.MHW)
	p.ElevationMLW = round(p.Elevation - s.MLW)
	p.TidalZone = ClassifyTidalZone(p.Elevation, s.MHW, s.MLW)
	p.ProcessedAt = clock.Now()
	return p, nil
}

// ClassifyTidalZone places elevation z relative to MHW and MLW. Both datum
// elevations themselves count as intertidal.
func ClassifyTidalZone(z, mhw, mlw float64) TidalZone {
	switch {
	case z > mhw:
		return ZoneSupratidal
	case z < mlw:
		return ZoneSubtidal
	default:
		return ZoneIntertidal
	}
}

// round trims float noise from datum subtraction to millimeters.
func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// SerializeSurveyPoint marshals an enriched point into an OutputEvent.
func SerializeSurveyPoint(p SurveyPoint) (OutputEvent, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize survey point: %w", err)
	}
	return OutputEvent{
		Key:   []byte(p.ID),
		Value: data,
		Headers: map[string]string{
			"site_year":    p.SiteYear.ID,
			"tidal_zone":   string(p.TidalZone),
			"processed_at": p.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
