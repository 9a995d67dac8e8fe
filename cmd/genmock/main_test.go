package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildRows_MatchesCheckedInFixture guards against the fixture drifting
// from the catalog.
func TestBuildRows_MatchesCheckedInFixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "survey_points.json"))
	require.NoError(t, err)

	var fixture []mockRow
	require.NoError(t, json.Unmarshal(data, &fixture))

	assert.Equal(t, fixture, buildRows(domain.All()))
}

func TestBuildRows_AlternatesReference(t *testing.T) {
	rows := buildRows(domain.All()[:2])
	require.Len(t, rows, 6)

	assert.Equal(t, "Assateague2014", rows[0].SiteYear)
	assert.Empty(t, rows[0].Code)
	assert.Equal(t, "cei10", rows[3].Code)
	assert.Empty(t, rows[3].SiteYear)
	assert.Equal(t, "0.590", rows[0].Elevation)
	assert.Equal(t, "0.105", rows[1].Elevation)
	assert.Equal(t, "-0.380", rows[2].Elevation)
}
