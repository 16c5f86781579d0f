package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appkit-go/appkit/internal/database"
)

// createTableSQL is the DDL for the settings table.
const createTableSQL = `CREATE TABLE IF NOT EXISTS _settings (
    namespace  TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (namespace, key)
)`

// Store is the SQLite-backed settings Backend. It shares the application's
// connection pool and creates its own table on construction.
type Store struct {
	pool *database.Pool
}

// NewStore creates a Store, creating the _settings table if needed.
func NewStore(ctx context.Context, pool *database.Pool) (*Store, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if _, err := conn.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("creating _settings table: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Get returns the value for a key, or ErrSettingNotFound.
func (s *Store) Get(ctx context.Context, namespace, key string) (json.RawMessage, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var value string

	err = conn.QueryRowContext(ctx,
		`SELECT value FROM _settings WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s.%s: %w", namespace, key, ErrSettingNotFound)
		}

		return nil, fmt.Errorf("getting setting %s.%s: %w", namespace, key, err)
	}

	return json.RawMessage(value), nil
}

// Set stores a value, overwriting any previous one.
func (s *Store) Set(ctx context.Context, namespace, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%s.%s: %w", namespace, key, ErrInvalidValue)
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO _settings (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, datetime('now'))`,
		namespace, key, string(value),
	)
	if err != nil {
		return fmt.Errorf("setting %s.%s: %w", namespace, key, err)
	}

	return nil
}

// GetAll returns every key-value pair in a namespace.
func (s *Store) GetAll(ctx context.Context, namespace string) (map[string]json.RawMessage, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.QueryContext(ctx,
		`SELECT key, value FROM _settings WHERE namespace = ?`, namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("listing settings in %s: %w", namespace, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	all := make(map[string]json.RawMessage)

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}

		all[key] = json.RawMessage(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading settings in %s: %w", namespace, err)
	}

	return all, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, namespace, key string) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.ExecContext(ctx,
		`DELETE FROM _settings WHERE namespace = ? AND key = ?`, namespace, key,
	)
	if err != nil {
		return fmt.Errorf("deleting setting %s.%s: %w", namespace, key, err)
	}

	return nil
}
