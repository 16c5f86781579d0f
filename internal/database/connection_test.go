package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appkit-go/appkit/internal/database"
)

func TestOpen_createsFileAndQueries(t *testing.T) {
	t.Parallel()

	pool, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer pool.Close() //nolint:errcheck // test cleanup

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Release()

	_, err = conn.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
}

func TestOpen_badPath_returnsConnectionFailed(t *testing.T) {
	t.Parallel()

	_, err := database.Open(filepath.Join(t.TempDir(), "missing", "nested", "app.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrConnectionFailed)
}

func TestAcquire_walModeEnabled(t *testing.T) {
	t.Parallel()

	// In-memory databases report journal_mode=memory, so use a file.
	pool, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer pool.Close() //nolint:errcheck // test cleanup

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Release()

	var mode string
	err = conn.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestAcquire_foreignKeysEnabled(t *testing.T) {
	t.Parallel()

	pool, err := database.OpenInMemory()
	require.NoError(t, err)
	defer pool.Close() //nolint:errcheck // test cleanup

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Release()

	var fk int
	err = conn.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestOpenInMemory_sharedAcrossAcquisitions(t *testing.T) {
	t.Parallel()

	pool, err := database.OpenInMemory()
	require.NoError(t, err)
	defer pool.Close() //nolint:errcheck // test cleanup

	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY); INSERT INTO t (id) VALUES (1);")
	require.NoError(t, err)
	conn.Release()

	// A second acquisition must observe the same database.
	conn2, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn2.Release()

	var count int
	err = conn2.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRelease_isIdempotent(t *testing.T) {
	t.Parallel()

	pool, err := database.OpenInMemory()
	require.NoError(t, err)
	defer pool.Close() //nolint:errcheck // test cleanup

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	conn.Release()
	conn.Release()
}
