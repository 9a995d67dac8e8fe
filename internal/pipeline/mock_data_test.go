package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/couchcryptid/coastal-data-etl/internal/observability"
	"github.com/couchcryptid/coastal-data-etl/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockJSONRow map[string]string

// TestSurveyTransformer_WithMockJSONData runs every fixture row through the
// transformer. The fixture has three points per site-year: 0.25m above MHW,
// at mid-tide, and 0.25m below MLW.
func TestSurveyTransformer_WithMockJSONData(t *testing.T) {
	rows := loadMockRows(t)
	require.Len(t, rows, 3*len(domain.All()))

	transformer := pipeline.NewTransformer(slog.Default(), observability.NewMetricsForTesting())
	msgTime := time.Date(2014, time.October, 1, 0, 0, 0, 0, time.UTC)

	wantZones := []domain.TidalZone{domain.ZoneSupratidal, domain.ZoneIntertidal, domain.ZoneSubtidal}
	perSiteYear := map[string]int{}
	ids := map[string]bool{}

	for i, row := range rows {
		payload, err := json.Marshal(row)
		require.NoError(t, err)

		point, err := transformer.Transform(context.Background(), domain.RawEvent{Value: payload, Timestamp: msgTime})
		require.NoError(t, err, "row %d", i)

		assert.Equal(t, wantZones[i%3], point.TidalZone, "row %d (%s)", i, point.SiteYear.ID)
		assert.Equal(t, point.SiteYear.Year, point.SurveyedAt.Format("2006"))
		assert.InDelta(t, point.ElevationMHW+point.SiteYear.MHW, point.Elevation, 0.001)
		assert.InDelta(t, point.ElevationMLW+point.SiteYear.MLW, point.Elevation, 0.001)
		assert.False(t, point.ProcessedAt.IsZero())
		assert.False(t, ids[point.ID], "duplicate point id %s", point.ID)

		ids[point.ID] = true
		perSiteYear[point.SiteYear.ID]++
	}

	assert.Len(t, perSiteYear, len(domain.All()))
	for id, n := range perSiteYear {
		assert.Equal(t, 3, n, id)
	}
}

func loadMockRows(t *testing.T) []mockJSONRow {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "survey_points.json"))
	require.NoError(t, err)

	var rows []mockJSONRow
	require.NoError(t, json.Unmarshal(data, &rows))
	return rows
}
