package tracker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appkit-go/appkit/internal/database"
	"github.com/appkit-go/appkit/internal/tracker"
)

func setupConn(t *testing.T) *database.Conn {
	t.Helper()

	pool, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() }) //nolint:errcheck // test cleanup

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(conn.Release)

	return conn
}

func TestEnsureTable_isIdempotent(t *testing.T) {
	t.Parallel()

	conn := setupConn(t)
	ctx := context.Background()

	require.NoError(t, tracker.EnsureTable(ctx, conn))
	require.NoError(t, tracker.EnsureTable(ctx, conn))
}

func TestRecordApplied_thenGetApplied(t *testing.T) {
	t.Parallel()

	conn := setupConn(t)
	ctx := context.Background()
	require.NoError(t, tracker.EnsureTable(ctx, conn))

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tracker.RecordApplied(ctx, tx, 1, "create_users", "abc123"))
	require.NoError(t, tx.Commit())

	applied, err := tracker.GetApplied(ctx, conn)
	require.NoError(t, err)
	require.Len(t, applied, 1)

	record := applied[1]
	assert.Equal(t, int64(1), record.Version)
	assert.Equal(t, "create_users", record.Name)
	assert.Equal(t, "abc123", record.Checksum)
	assert.NotEmpty(t, record.AppliedAt)
}

func TestRecordApplied_duplicateVersion_fails(t *testing.T) {
	t.Parallel()

	conn := setupConn(t)
	ctx := context.Background()
	require.NoError(t, tracker.EnsureTable(ctx, conn))

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tracker.RecordApplied(ctx, tx, 1, "a", "x"))

	err = tracker.RecordApplied(ctx, tx, 1, "b", "y")
	require.Error(t, err)
	require.NoError(t, tx.Rollback())
}

func TestDeleteRecord_removesRow(t *testing.T) {
	t.Parallel()

	conn := setupConn(t)
	ctx := context.Background()
	require.NoError(t, tracker.EnsureTable(ctx, conn))

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tracker.RecordApplied(ctx, tx, 2, "create_posts", "def"))
	require.NoError(t, tx.Commit())

	tx, err = conn.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tracker.DeleteRecord(ctx, tx, 2))
	require.NoError(t, tx.Commit())

	applied, err := tracker.GetApplied(ctx, conn)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestDeleteRecord_missingVersion_returnsNotFound(t *testing.T) {
	t.Parallel()

	conn := setupConn(t)
	ctx := context.Background()
	require.NoError(t, tracker.EnsureTable(ctx, conn))

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)

	err = tracker.DeleteRecord(ctx, tx, 99)
	assert.ErrorIs(t, err, tracker.ErrRecordNotFound)
	require.NoError(t, tx.Rollback())
}
