package export

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/coastal-data-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/coastal-data-etl/internal/domain"
)

// WriteFile exports records to path, replacing any existing file.
func WriteFile(ctx context.Context, path string, f Format, records []domain.SiteYear) error {
	if f == FormatSQLite {
		return writeSQLite(ctx, path, records)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, f, records); err != nil {
		file.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("export %s: %w", f, err)
	}
	return file.Close()
}

func writeSQLite(ctx context.Context, path string, records []domain.SiteYear) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing %s: %w", path, err)
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, records); err != nil {
		store.Close() //nolint:errcheck // save error takes precedence
		return err
	}
	return store.Close()
}
