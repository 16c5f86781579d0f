package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/appkit-go/appkit/internal/database"
)

// execInTransaction runs fn inside a transaction on the given connection.
// On success the transaction is committed; on error it is rolled back, so
// no partial schema change ever persists.
func execInTransaction(ctx context.Context, conn *database.Conn, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback() //nolint:errcheck // rollback on committed tx returns ErrTxDone

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
