package arangodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
)

type Config struct {
	URL      string
	Username string
	Password string
	Database string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("arangodb URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("arangodb username is required")
	}
	if c.Database == "" {
		return fmt.Errorf("arangodb database name is required")
	}
	return nil
}

// Client owns the connection and the selected database.
type Client struct {
	arangoClient arangodb.Client
	db           arangodb.Database
	cfg          Config
}

// New connects and makes sure the configured database exists.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arangodb config: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL}) // round robins from the urls. we just have one for now
	conn := connection.NewHttp2Connection(connection.DefaultHTTP2ConfigurationWrapper(endpoint, strings.HasPrefix(cfg.URL, "https")))

	auth := connection.NewBasicAuth(cfg.Username, cfg.Password)
	if err := conn.SetAuthentication(auth); err != nil {
		return nil, fmt.Errorf("arangodb auth: %w", err)
	}

	c := &Client{
		arangoClient: arangodb.NewClient(conn),
		cfg:          cfg,
	}
	if err := c.ensureDatabase(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Database() arangodb.Database {
	return c.db
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) ensureDatabase(ctx context.Context) error {
	start := time.Now()

	exists, err := c.arangoClient.DatabaseExists(ctx, c.cfg.Database)
	if err != nil {
		return fmt.Errorf("check database exists: %w", err)
	}

	if !exists {
		_, err = c.arangoClient.CreateDatabase(ctx, c.cfg.Database, nil)
		if err != nil {
			return fmt.Errorf("create database: %w", err)
		}
		slog.InfoContext(ctx, "arangodb database created",
			"database", c.cfg.Database,
			"duration_ms", time.Since(start).Milliseconds())
	}

	db, err := c.arangoClient.GetDatabase(ctx, c.cfg.Database, nil)
	if err != nil {
		return fmt.Errorf("get database: %w", err)
	}
	c.db = db

	return nil
}

// EnsureCollection creates a document collection with one unique
// persistent index per entry of unique.
func (c *Client) EnsureCollection(ctx context.Context, name string, unique []string) error {
	exists, err := c.db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection %s exists: %w", name, err)
	}

	if !exists {
		colType := arangodb.CollectionTypeDocument
		_, err = c.db.CreateCollectionV2(ctx, name, &arangodb.CreateCollectionPropertiesV2{Type: &colType})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
		slog.InfoContext(ctx, "arangodb collection created", "collection", name)
	}

	if len(unique) == 0 {
		return nil
	}

	col, err := c.db.GetCollection(ctx, name, nil)
	if err != nil {
		return fmt.Errorf("get collection %s: %w", name, err)
	}

	isUnique := true
	for _, field := range unique {
		_, created, err := col.EnsurePersistentIndex(ctx, []string{field}, &arangodb.CreatePersistentIndexOptions{
			Name:   fmt.Sprintf("%s_%s_key", name, field),
			Unique: &isUnique,
		})
		if err != nil {
			return fmt.Errorf("ensure unique index %s.%s: %w", name, field, err)
		}
		if created {
			slog.InfoContext(ctx, "arangodb unique index created", "collection", name, "field", field)
		}
	}

	return nil
}

// Truncate empties the named collections. Used by integration tests.
func (c *Client) Truncate(ctx context.Context, names ...string) error {
	for _, name := range names {
		col, err := c.db.GetCollection(ctx, name, nil)
		if err != nil {
			return fmt.Errorf("get collection %s: %w", name, err)
		}
		if err := col.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate collection %s: %w", name, err)
		}
	}
	return nil
}
