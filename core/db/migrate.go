package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationStatus is one row of `cmsctl migrate status`.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Migrator runs the embedded goose migrations against the pool.
type Migrator struct {
	sqlDB    *sql.DB
	provider *goose.Provider
}

func NewMigrator(db *DB) (*Migrator, error) {
	sqlDB := stdlib.OpenDBFromPool(db.pool)

	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}

	return &Migrator{sqlDB: sqlDB, provider: provider}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	r, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	slog.InfoContext(ctx, "migration rolled back", "version", r.Source.Version, "path", r.Source.Path)
	return nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	rows, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading migration status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(rows))
	for _, r := range rows {
		out = append(out, MigrationStatus{
			Version: r.Source.Version,
			Path:    r.Source.Path,
			Applied: r.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Close releases the database/sql handle; the pool itself stays open.
func (m *Migrator) Close() error {
	return m.sqlDB.Close()
}
