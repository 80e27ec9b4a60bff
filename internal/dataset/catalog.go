package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ratingsync/internal/ratings"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current catalog schema version. Bump it when the
// schema changes; a mismatched database must be cleared before reuse.
const schemaVersion = 1

// ErrSchemaMismatch indicates the catalog database was created by a
// different schema version.
var ErrSchemaMismatch = errors.New("catalog schema version mismatch")

// Catalog is the cumulative SQLite record of every item ever harvested,
// keyed by the dedup key so reruns update rows instead of duplicating them.
type Catalog struct {
	db   *sql.DB
	path string
}

// OpenCatalog initializes or connects to the catalog database.
func OpenCatalog(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	c := &Catalog{db: db, path: path}
	if err := c.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) initSchema(ctx context.Context) error {
	var tableExists int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create catalog schema: %w", err)
		}
		return nil
	}

	var version int
	if err := c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read catalog schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, c.path)
	}
	return nil
}

// Upsert records a run's items. New keys get first_seen set to now; existing
// keys keep their original first_seen and refresh everything else.
func (c *Catalog) Upsert(ctx context.Context, items []ratings.Item) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog (
			item_key, title, year, kind, rating, rated_on, source_url,
			external_id, external_url, original_title,
			genre, director, cast_members, description,
			first_seen, last_seen
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_key) DO UPDATE SET
			title = excluded.title,
			year = excluded.year,
			kind = excluded.kind,
			rating = excluded.rating,
			rated_on = excluded.rated_on,
			source_url = excluded.source_url,
			external_id = excluded.external_id,
			external_url = excluded.external_url,
			original_title = excluded.original_title,
			genre = excluded.genre,
			director = excluded.director,
			cast_members = excluded.cast_members,
			description = excluded.description,
			last_seen = excluded.last_seen`)
	if err != nil {
		return fmt.Errorf("prepare catalog upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		if _, err := stmt.ExecContext(ctx,
			item.Key(), item.Title, item.Year, string(item.Kind), item.Rating,
			item.RatedOn, item.SourceURL, item.ExternalID, item.ExternalURL,
			item.OriginalTitle, item.Genre, item.Director, item.Cast,
			item.Description, now, now,
		); err != nil {
			return fmt.Errorf("upsert %q: %w", item.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog tx: %w", err)
	}
	return nil
}

// Count returns the number of cataloged items.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM catalog").Scan(&n); err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	return n, nil
}

// FirstSeen returns when an item key was first cataloged.
func (c *Catalog) FirstSeen(ctx context.Context, key string) (time.Time, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		"SELECT first_seen FROM catalog WHERE item_key = ?", key).Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("read first_seen: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse first_seen %q: %w", raw, err)
	}
	return ts, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}
