// Package sqlite provides a file-backed [kv.Backend] on the pure Go
// modernc.org/sqlite driver.
//
// Values live in a single two-column table, so the key layout of
// [kv.Store] is kept unchanged on disk.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/surrealdb/surrealblocks/pkg/store"
	"github.com/surrealdb/surrealblocks/pkg/store/kv"
)

const driverName = "sqlite"

// Backend stores key-value pairs in a SQLite table.
type Backend struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*Backend, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return &Backend{db: db}, nil
}

// NewSQLiteStore opens the database at path and returns a document store on it.
func NewSQLiteStore(path string, opts ...kv.Option) (store.Store, error) {
	backend, err := Open(path)
	if err != nil {
		return nil, err
	}
	return kv.New(backend, opts...), nil
}

// Migrate creates the key-value table.
func (b *Backend) Migrate(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
