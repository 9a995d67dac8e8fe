package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList_Table(t *testing.T) {
	out, err := run(t, "list", "--region", "NewJersey")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Forsythe2014")
	assert.Contains(t, out, "ebf14")
	assert.Contains(t, out, "-0.61")
	assert.NotContains(t, out, "Cedar2010")
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, "list", "--year", "2012", "--json")
	require.NoError(t, err)

	var got []domain.SiteYear
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Cedar2012", got[0].ID)
	assert.Equal(t, "Smith2012", got[1].ID)
}

func TestList_JSONNoMatch(t *testing.T) {
	out, err := run(t, "list", "--region", "Maine", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestGet(t *testing.T) {
	out, err := run(t, "get", "cg14")
	require.NoError(t, err)

	var got domain.SiteYear
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "CoastGuard2014", got.ID)
	assert.Equal(t, -1.1, got.MLW)
}

func TestGet_Unknown(t *testing.T) {
	_, err := run(t, "get", "zz99")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSiteYear)
}

func TestValidate_Catalog(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog: 12 site-years OK")
}

func TestValidate_MockPoints(t *testing.T) {
	out, err := run(t, "validate", "--points", filepath.Join("..", "..", "data", "mock", "survey_points.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "points: 36 records OK")
}

func TestValidate_BadPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"site_year":"Cedar2010","elevation":"0.1"},
		{"site_year":"Atlantis2014","elevation":"0.1"},
		{"code":"pr14","elevation":""},
		{"code":"mon14","elevation":"NaN"},
		{"code":"fi14","elevation":"-Inf"}
	]`), 0o600))

	_, err := run(t, "validate", "--points", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
	assert.Contains(t, err.Error(), "record 2")
	assert.Contains(t, err.Error(), "record 3")
	assert.Contains(t, err.Error(), "record 4")
	assert.NotContains(t, err.Error(), "record 0")
}

func TestExport_FileInferredFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site_years.csv")
	_, err := run(t, "export", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,region,site,year,code,MHW,MLW,MTL")
	assert.Contains(t, string(data), "Monomoy2014,Massachusetts,Monomoy,2014,mon14,0.39,-0.95,")
}

func TestExport_StdoutYAML(t *testing.T) {
	out, err := run(t, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "site: ParkerRiver")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--format", "xlsx")
	require.Error(t, err)
}
