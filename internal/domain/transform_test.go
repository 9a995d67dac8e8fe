package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawEvent(t *testing.T) {
	msgTime := time.Date(2014, 10, 2, 13, 0, 0, 0, time.UTC)

	t.Run("site_year reference", func(t *testing.T) {
		data := []byte(`{"site_year":"Cedar2010","transect":"T12","point":"4","lat":"37.65","lon":"-75.61","elevation":"1.12","surveyed_at":"2010-09-14"}`)
		result, err := ParseRawEvent(RawEvent{Value: data, Timestamp: msgTime})

		require.NoError(t, err)
		assert.Equal(t, "Cedar2010", result.Ref)
		assert.Equal(t, "T12", result.Transect)
		assert.Equal(t, "4", result.Point)
		assert.Equal(t, 37.65, result.Geo.Lat)
		assert.Equal(t, -75.61, result.Geo.Lon)
		assert.Equal(t, 1.12, result.Elevation)
		assert.Equal(t, time.Date(2010, 9, 14, 0, 0, 0, 0, time.UTC), result.SurveyedAt)
		assert.True(t, strings.HasPrefix(result.ID, "cei10-"))
		assert.Equal(t, data, result.RawPayload)
		assert.Empty(t, result.SiteYear.ID, "metadata is attached during enrichment")
	})

	t.Run("code reference", func(t *testing.T) {
		data := []byte(`{"code":"pr14","transect":"A","point":"1","elevation":"-0.4"}`)
		result, err := ParseRawEvent(RawEvent{Value: data, Timestamp: msgTime})

		require.NoError(t, err)
		assert.Equal(t, "pr14", result.Ref)
		assert.Equal(t, msgTime, result.SurveyedAt)
		assert.True(t, strings.HasPrefix(result.ID, "pr14-"))
	})

	t.Run("site_year wins over code", func(t *testing.T) {
		data := []byte(`{"site_year":"Smith2012","code":"cei10","elevation":"0"}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, "Smith2012", result.Ref)
	})

	t.Run("unknown reference keeps bare hash ID", func(t *testing.T) {
		data := []byte(`{"site_year":"Nowhere2099","elevation":"0.2"}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Len(t, result.ID, 16)
	})

	t.Run("RFC3339 survey time", func(t *testing.T) {
		data := []byte(`{"code":"mon14","elevation":"0.2","surveyed_at":"2014-06-01T15:04:05-04:00"}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2014, 6, 1, 19, 4, 5, 0, time.UTC), result.SurveyedAt)
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"elevation":"0.2"}`)})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingSiteYear))
	})

	t.Run("invalid elevation", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"code":"cg14","elevation":"n/a"}`)})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidElevation))
	})

	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		t.Run("non-finite elevation "+v, func(t *testing.T) {
			_, err := ParseRawEvent(RawEvent{Value: []byte(`{"code":"cg14","elevation":"` + v + `"}`)})

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidElevation))
		})
	}

	t.Run("empty elevation", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"code":"cg14"}`)})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidElevation))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("{invalid json")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw event")
	})

	t.Run("deterministic ID", func(t *testing.T) {
		data := []byte(`{"site_year":"Forsythe2014","transect":"T1","point":"9","lat":"39.5","lon":"-74.3","elevation":"0.8"}`)
		r1, err := ParseRawEvent(RawEvent{Value: data})
		require.NoError(t, err)
		r2, err := ParseRawEvent(RawEvent{Value: data})
		require.NoError(t, err)

		assert.Equal(t, r1.ID, r2.ID)
	})

	t.Run("ID stable across reference style", func(t *testing.T) {
		byID, err := ParseRawEvent(RawEvent{Value: []byte(`{"site_year":"Forsythe2014","transect":"T1","point":"9","elevation":"0.8"}`)})
		require.NoError(t, err)
		byCode, err := ParseRawEvent(RawEvent{Value: []byte(`{"code":"ebf14","transect":"T1","point":"9","elevation":"0.8"}`)})
		require.NoError(t, err)

		assert.Equal(t, byID.ID, byCode.ID)
	})
}

func TestGenerateID(t *testing.T) {
	t.Run("code prefix for catalog reference", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(generateID("Smith2014", "T1", "1", 0, 0), "smi14-"))
		assert.True(t, strings.HasPrefix(generateID("SMI14", "T1", "1", 0, 0), "smi14-"))
	})

	t.Run("ID and code references produce the same ID", func(t *testing.T) {
		byID := generateID("Cedar2010", "T4", "2", 37.65, -75.61)
		assert.Equal(t, byID, generateID("cei10", "T4", "2", 37.65, -75.61))
		assert.Equal(t, byID, generateID("CEI10", "T4", "2", 37.65, -75.61))
		assert.True(t, strings.HasPrefix(byID, "cei10-"))
	})

	t.Run("different points produce different IDs", func(t *testing.T) {
		id1 := generateID("Smith2014", "T1", "1", 37.1, -75.9)
		id2 := generateID("Smith2014", "T1", "2", 37.1, -75.9)
		assert.NotEqual(t, id1, id2)
	})
}

func TestParseSurveyDate(t *testing.T) {
	fallback := time.Date(2014, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"date only", "2012-08-30", time.Date(2012, 8, 30, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2012-08-30T10:00:00Z", time.Date(2012, 8, 30, 10, 0, 0, 0, time.UTC)},
		{"empty", "", fallback},
		{"garbage", "last tuesday", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSurveyDate(tt.input, fallback))
		})
	}
}

func TestClassifyTidalZone(t *testing.T) {
	tests := []struct {
		name     string
		z        float64
		expected TidalZone
	}{
		{"above MHW", 0.35, ZoneSupratidal},
		{"at MHW", 0.34, ZoneIntertidal},
		{"between", 0, ZoneIntertidal},
		{"at MLW", -0.56, ZoneIntertidal},
		{"below MLW", -0.57, ZoneSubtidal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTidalZone(tt.z, 0.34, -0.56))
		})
	}
}

func TestEnrichSurveyPoint(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("resolves site-year and datums", func(t *testing.T) {
		p, err := EnrichSurveyPoint(SurveyPoint{ID: "p1", Ref: "Cedar2010", Elevation: 1.12})

		require.NoError(t, err)
		assert.Equal(t, "Cedar2010", p.SiteYear.ID)
		assert.Equal(t, "Delmarva", p.SiteYear.Region)
		assert.Equal(t, 0.34, p.SiteYear.MHW)
		assert.Equal(t, -0.56, p.SiteYear.MLW)
		assert.Nil(t, p.SiteYear.MTL)
		assert.Equal(t, 0.78, p.ElevationMHW)
		assert.Equal(t, 1.68, p.ElevationMLW)
		assert.Equal(t, ZoneSupratidal, p.TidalZone)
		assert.Equal(t, fixedTime, p.ProcessedAt)
	})

	t.Run("code reference", func(t *testing.T) {
		p, err := EnrichSurveyPoint(SurveyPoint{Ref: "pr14", Elevation: -2})

		require.NoError(t, err)
		assert.Equal(t, "ParkerRiver2014", p.SiteYear.ID)
		assert.Equal(t, ZoneSubtidal, p.TidalZone)
		assert.Equal(t, -0.63, p.ElevationMLW)
	})

	t.Run("unknown reference", func(t *testing.T) {
		p, err := EnrichSurveyPoint(SurveyPoint{ID: "p2", Ref: "Atlantis2014"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSiteYear))
		assert.True(t, p.ProcessedAt.IsZero())
	})
}

func TestSerializeSurveyPoint(t *testing.T) {
	processed := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	s, ok := Lookup("Monomoy2014")
	require.True(t, ok)

	out, err := SerializeSurveyPoint(SurveyPoint{
		ID:          "mon14-abc",
		Ref:         "mon14",
		SiteYear:    s,
		Elevation:   0.1,
		TidalZone:   ZoneIntertidal,
		ProcessedAt: processed,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("mon14-abc"), out.Key)
	assert.Equal(t, "Monomoy2014", out.Headers["site_year"])
	assert.Equal(t, "intertidal", out.Headers["tidal_zone"])
	assert.Equal(t, "2024-04-26T15:10:00Z", out.Headers["processed_at"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.Equal(t, "intertidal", decoded["tidal_zone"])
	siteYear, ok := decoded["site_year"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mon14", siteYear["code"])
	assert.Nil(t, siteYear["MTL"])
	assert.NotContains(t, string(out.Value), "RawPayload")
}
