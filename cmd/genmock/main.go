// Command genmock writes the raw survey point fixture used by the pipeline and
// integration tests. It derives every point from the compiled-in site-year
// catalog so the fixture always matches the datums the ETL enriches with.
//
// For each site-year it emits three points on transect T1: 0.25m above MHW,
// at mid-tide, and 0.25m below MLW. Even-indexed site-years reference the
// catalog ID, odd-indexed ones the code, so both lookup paths are covered.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/survey_points.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
)

// datumOffset is how far outside the tidal frame the supratidal and subtidal
// points are placed.
const datumOffset = 0.25

// mockRow mirrors domain.RawSurveyRecord but omits the unused reference field.
type mockRow struct {
	SiteYear   string `json:"site_year,omitempty"`
	Code       string `json:"code,omitempty"`
	Transect   string `json:"transect"`
	Point      string `json:"point"`
	Elevation  string `json:"elevation"`
	SurveyedAt string `json:"surveyed_at"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw survey point fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rows := buildRows(domain.All())

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil { //nolint:gosec // fixture is not sensitive
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d survey points to %s", len(rows), *out)
	return nil
}

func buildRows(siteYears []domain.SiteYear) []mockRow {
	rows := make([]mockRow, 0, 3*len(siteYears))
	for i, s := range siteYears {
		elevations := []float64{s.MHW + datumOffset, s.MidTide(), s.MLW - datumOffset}
		for j, z := range elevations {
			row := mockRow{
				Transect:   "T1",
				Point:      strconv.Itoa(j + 1),
				Elevation:  strconv.FormatFloat(math.Round(z*1000)/1000, 'f', 3, 64),
				SurveyedAt: s.Year + "-09-15",
			}
			if i%2 == 0 {
				row.SiteYear = s.ID
			} else {
				row.Code = s.Code
			}
			rows = append(rows, row)
		}
	}
	return rows
}
