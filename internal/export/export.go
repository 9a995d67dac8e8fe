// Package export writes the site-year catalog in the file formats used by
// downstream GIS and analysis tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/klauspost/pgzip"
	"github.com/parquet-go/parquet-go"
	"sigs.k8s.io/yaml"
)

// ErrUnknownFormat is returned for format names that have no writer.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatJSONGz  Format = "json.gz"
	FormatYAML    Format = "yaml"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatJSON, FormatJSONGz, FormatYAML, FormatCSV, FormatParquet, FormatSQLite}

// csvHeader matches the column names of the field configuration.
var csvHeader = []string{"id", "region", "site", "year", "code", "MHW", "MLW", "MTL"}

// ParseFormat maps a name (case-insensitive, "yml" accepted) to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yml" {
		s = string(FormatYAML)
	}
	if s == "db" || s == "sqlite3" {
		s = string(FormatSQLite)
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".json.gz") {
		return FormatJSONGz, nil
	}
	return ParseFormat(strings.TrimPrefix(filepath.Ext(base), "."))
}

// Write encodes records to w. SQLite cannot be streamed; use WriteFile.
func Write(w io.Writer, f Format, records []domain.SiteYear) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatJSONGz:
		return writeJSONGz(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatParquet:
		return writeParquet(w, records)
	case FormatSQLite:
		return fmt.Errorf("%s export needs a file path", f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func writeJSON(w io.Writer, records []domain.SiteYear) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeJSONGz(w io.Writer, records []domain.SiteYear) error {
	gz := pgzip.NewWriter(w)
	if err := writeJSON(gz, records); err != nil {
		gz.Close() //nolint:errcheck // encode error takes precedence
		return err
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []domain.SiteYear) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeCSV(w io.Writer, records []domain.SiteYear) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range records {
		mtl := ""
		if s.MTL != nil {
			mtl = formatDatum(*s.MTL)
		}
		row := []string{s.ID, s.Region, s.Site, s.Year, s.Code, formatDatum(s.MHW), formatDatum(s.MLW), mtl}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDatum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeParquet(w io.Writer, records []domain.SiteYear) error {
	pw := parquet.NewGenericWriter[domain.SiteYear](w)
	if _, err := pw.Write(records); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
