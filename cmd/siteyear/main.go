// Command siteyear inspects and exports the compiled-in site-year catalog.
//
// Usage:
//
//	siteyear list --region Delmarva
//	siteyear get cei10
//	siteyear validate --points data/mock/survey_points.json
//	siteyear export --out site_years.parquet
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
