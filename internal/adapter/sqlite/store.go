// Package sqlite persists site-year records to a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS site_years (
	id     TEXT PRIMARY KEY,
	region TEXT NOT NULL,
	site   TEXT NOT NULL,
	year   TEXT NOT NULL,
	code   TEXT NOT NULL UNIQUE,
	mhw    REAL NOT NULL,
	mlw    REAL NOT NULL,
	mtl    REAL
);
CREATE INDEX IF NOT EXISTS idx_site_years_region ON site_years(region);`

// Store reads and writes the site_years table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close() //nolint:errcheck // schema error takes precedence
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts records in a single transaction.
func (s *Store) Save(ctx context.Context, records []domain.SiteYear) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO site_years (id, region, site, year, code, mhw, mlw, mtl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var mtl sql.NullFloat64
		if r.MTL != nil {
			mtl = sql.NullFloat64{Float64: *r.MTL, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Region, r.Site, r.Year, r.Code, r.MHW, r.MLW, mtl); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// List returns every stored record ordered by ID.
func (s *Store) List(ctx context.Context) ([]domain.SiteYear, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, site, year, code, mhw, mlw, mtl FROM site_years ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query site_years: %w", err)
	}
	defer rows.Close()

	var out []domain.SiteYear
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the record stored under id.
func (s *Store) Get(ctx context.Context, id string) (domain.SiteYear, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, region, site, year, code, mhw, mlw, mtl FROM site_years WHERE id = ?`, id)
	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SiteYear{}, fmt.Errorf("%w: %q", domain.ErrUnknownSiteYear, id)
	}
	return r, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (domain.SiteYear, error) {
	var r domain.SiteYear
	var mtl sql.NullFloat64
	if err := sc.Scan(&r.ID, &r.Region, &r.Site, &r.Year, &r.Code, &r.MHW, &r.MLW, &mtl); err != nil {
		return domain.SiteYear{}, err
	}
	if mtl.Valid {
		v := mtl.Float64
		r.MTL = &v
	}
	return r, nil
}
