// Package integration exercises the full stack end to end: one SQLite
// file shared by the migration engine, the settings store, and the theme
// registry, across process-like reopen boundaries.
package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appkit-go/appkit/internal/database"
	"github.com/appkit-go/appkit/internal/engine"
	"github.com/appkit-go/appkit/internal/settings"
	"github.com/appkit-go/appkit/internal/theme"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFullLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	migrationsDir := filepath.Join(dir, "migrations")
	require.NoError(t, os.MkdirAll(migrationsDir, 0o755))

	writeFile(t, filepath.Join(migrationsDir, "1_create_notes.sql"),
		"CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);\n-- DOWN\nDROP TABLE notes;\n")
	writeFile(t, filepath.Join(migrationsDir, "2_add_tags.sql"),
		`CREATE TABLE tags (
    id      INTEGER PRIMARY KEY,
    note_id INTEGER NOT NULL REFERENCES notes(id),
    label   TEXT NOT NULL
);
-- DOWN
DROP TABLE tags;
`)

	pool, err := database.Open(dbPath)
	require.NoError(t, err)

	eng := engine.New(pool)
	require.NoError(t, eng.RegisterFromDir(migrationsDir))

	statuses, err := eng.ApplyPending(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Applied)
	assert.True(t, statuses[1].Applied)

	// The migrated schema is usable, foreign keys included.
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO notes (id, body) VALUES (1, 'hello')`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO tags (note_id, label) VALUES (1, 'inbox')`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO tags (note_id, label) VALUES (99, 'dangling')`)
	require.Error(t, err, "foreign key violation must be rejected")
	conn.Release()

	// Settings and themes share the same database file.
	store, err := settings.NewStore(ctx, pool)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "editor", "font_size", json.RawMessage("14")))

	registry, err := theme.NewRegistry(ctx, theme.DefaultThemes(), "light", store)
	require.NoError(t, err)
	_, err = registry.SetActive(ctx, "dark")
	require.NoError(t, err)

	require.NoError(t, pool.Close())

	// Reopen: everything persisted.
	pool, err = database.Open(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Close())
	})

	eng = engine.New(pool)
	require.NoError(t, eng.RegisterFromDir(migrationsDir))

	statuses, err = eng.ApplyPending(ctx)
	require.NoError(t, err)

	for _, s := range statuses {
		assert.True(t, s.Applied)
	}

	store, err = settings.NewStore(ctx, pool)
	require.NoError(t, err)

	value, err := store.Get(ctx, "editor", "font_size")
	require.NoError(t, err)
	assert.Equal(t, "14", string(value))

	registry, err = theme.NewRegistry(ctx, theme.DefaultThemes(), "light", store)
	require.NoError(t, err)
	assert.Equal(t, "dark", registry.Active().Name)

	// Roll back one step: tags goes, notes stays.
	status, err := eng.RollbackLast(ctx)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, int64(2), status.Version)

	conn, err = pool.Acquire(ctx)
	require.NoError(t, err)

	var body string
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT body FROM notes WHERE id = 1`).Scan(&body))
	assert.Equal(t, "hello", body)

	_, err = conn.ExecContext(ctx, `SELECT count(*) FROM tags`)
	require.Error(t, err, "tags table must be gone after rollback")
	conn.Release()
}

func TestChecksumMismatchAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	migrationsDir := filepath.Join(dir, "migrations")
	require.NoError(t, os.MkdirAll(migrationsDir, 0o755))

	path := filepath.Join(migrationsDir, "1_create_notes.sql")
	writeFile(t, path, "CREATE TABLE notes (id INTEGER PRIMARY KEY);\n")

	pool, err := database.Open(dbPath)
	require.NoError(t, err)

	eng := engine.New(pool)
	require.NoError(t, eng.RegisterFromDir(migrationsDir))
	_, err = eng.ApplyPending(ctx)
	require.NoError(t, err)
	require.NoError(t, pool.Close())

	// Editing an already-applied file is detected on the next run.
	writeFile(t, path, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);\n")

	pool, err = database.Open(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Close())
	})

	eng = engine.New(pool)
	require.NoError(t, eng.RegisterFromDir(migrationsDir))

	_, err = eng.ApplyPending(ctx)
	require.ErrorIs(t, err, engine.ErrChecksumMismatch)
}

func TestWALModePersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "app.db")

	pool, err := database.Open(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Close())
	})

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	var mode string
	require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
