// Package backends opens the store.Provider selected by STORE_BACKEND.
package backends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/cms/common/arangodb"
	"basegraph.app/cms/core/config"
	"basegraph.app/cms/core/db"
	"basegraph.app/cms/internal/store"
	"basegraph.app/cms/internal/store/arangostore"
	"basegraph.app/cms/internal/store/memstore"
)

type Backend struct {
	Provider store.Provider
	Kind     config.StoreBackend
	// DB is only set for the postgres backend.
	DB *db.DB

	closers []func() error
}

func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	b := &Backend{Kind: cfg.Store.Backend}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		b.closers = append(b.closers, func() error { database.Close(); return nil })
		b.DB = database

		if cfg.Store.AutoMigrate {
			if err := migrateUp(ctx, database); err != nil {
				return nil, errors.Join(err, b.Close())
			}
		}
		b.Provider = store.NewStores(database.Pool())

	case config.StoreBackendArangoDB:
		client, err := arangodb.New(ctx, arangodb.Config{
			URL:      cfg.ArangoDB.URL,
			Username: cfg.ArangoDB.Username,
			Password: cfg.ArangoDB.Password,
			Database: cfg.ArangoDB.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to arangodb: %w", err)
		}
		b.closers = append(b.closers, client.Close)

		provider, err := arangostore.New(ctx, client)
		if err != nil {
			return nil, errors.Join(err, b.Close())
		}
		b.Provider = provider

	case config.StoreBackendMemory:
		b.Provider = memstore.New()

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	slog.InfoContext(ctx, "store opened", "backend", cfg.Store.Backend)
	return b, nil
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}

func migrateUp(ctx context.Context, database *db.DB) error {
	migrator, err := db.NewMigrator(database)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return migrator.Up(ctx)
}
