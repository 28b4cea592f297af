package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a persistent cache tier backed by a single-table SQLite
// database. It is used as the secondary tier when no remote cache service is
// configured, so cached embeddings survive process restarts. Like the remote
// tier it absorbs its own errors.
type SQLite struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger
}

func OpenSQLite(dbPath string, ttl time.Duration, logger *slog.Logger) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			inserted_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &SQLite{db: db, ttl: ttl, logger: logger}, nil
}

func (c *SQLite) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	var insertedAt int64
	err := c.db.QueryRowContext(ctx, `
		SELECT value, inserted_at FROM cache_entries WHERE key = ?
	`, key).Scan(&value, &insertedAt)

	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("sqlite cache get failed", "error", err)
		return nil, false
	}

	if time.Since(time.Unix(insertedAt, 0)) > c.ttl {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
		return nil, false
	}
	return value, true
}

func (c *SQLite) Set(ctx context.Context, key string, value []byte) {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, inserted_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			inserted_at = excluded.inserted_at
	`, key, value, time.Now().Unix())
	if err != nil {
		c.logger.Warn("sqlite cache set failed", "error", err)
	}
}

func (c *SQLite) Close() error {
	return c.db.Close()
}
