// Package tracker persists the ledger of applied migrations in the
// _migrations table. A row exists for a version exactly while that
// version's up script is committed and not rolled back.
package tracker

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/appkit-go/appkit/internal/database"
)

// Record is one row of the _migrations table.
type Record struct {
	Version   int64
	Name      string
	Checksum  string
	AppliedAt string
}

// EnsureTable creates the tracking table if it does not exist.
func EnsureTable(ctx context.Context, conn *database.Conn) error {
	if _, err := conn.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("%w: %w", ErrTableCreation, err)
	}

	return nil
}

// GetApplied returns all tracking records keyed by version.
func GetApplied(ctx context.Context, conn *database.Conn) (map[int64]Record, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT version, name, checksum, applied_at FROM _migrations`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	applied := make(map[int64]Record)

	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Version, &r.Name, &r.Checksum, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}

		applied[r.Version] = r
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	return applied, nil
}

// RecordApplied inserts a tracking record inside the given transaction, so
// the record commits atomically with the migration's schema change.
func RecordApplied(ctx context.Context, tx *sql.Tx, version int64, name, checksum string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO _migrations (version, name, checksum) VALUES (?, ?, ?)`,
		version, name, checksum,
	)
	if err != nil {
		return fmt.Errorf("recording migration %d as applied: %w", version, err)
	}

	return nil
}

// DeleteRecord removes the tracking record for a version inside the given
// transaction. Missing records are an error: rollback must only be invoked
// for versions known to be applied.
func DeleteRecord(ctx context.Context, tx *sql.Tx, version int64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM _migrations WHERE version = ?`, version)
	if err != nil {
		return fmt.Errorf("deleting record for migration %d: %w", version, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record for migration %d: %w", version, err)
	}

	if affected == 0 {
		return fmt.Errorf("migration %d: %w", version, ErrRecordNotFound)
	}

	return nil
}
