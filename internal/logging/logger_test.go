package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appkit-go/appkit/internal/logging"
)

func testConfig(dir string) logging.Config {
	cfg := logging.DefaultConfig(dir)
	cfg.ConsoleOutput = false

	return cfg
}

func TestNew_writesDailyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	log, err := logging.New(testConfig(dir))
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Close())

	name := filepath.Join(dir, "appkit-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"level":"info"`)
}

func TestNew_rotationNever_singleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Rotation = logging.RotationNever

	log, err := logging.New(cfg)
	require.NoError(t, err)

	log.Warn("steady")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(filepath.Join(dir, "appkit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"steady"`)
}

func TestNew_createsMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "logs")

	log, err := logging.New(testConfig(dir))
	require.NoError(t, err)
	require.NoError(t, log.Close())

	assert.Equal(t, dir, log.Dir())
	_, err = os.Stat(dir)
	require.NoError(t, err)
}

func TestNew_invalidLevel(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir())
	cfg.Level = "chatty"

	_, err := logging.New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Level = "warn"

	log, err := logging.New(cfg)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Close())

	entries, err := logging.ReadEntries(dir, 0, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestReadEntries_countAndLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	log, err := logging.New(testConfig(dir))
	require.NoError(t, err)

	log.Info("one")
	log.Error("two")
	log.Info("three")
	log.Info("four")
	require.NoError(t, log.Close())

	entries, err := logging.ReadEntries(dir, 2, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "three", entries[0].Message)
	assert.Equal(t, "four", entries[1].Message)

	errors, err := logging.ReadEntries(dir, 0, "error")
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "two", errors[0].Message)
	assert.Equal(t, "error", errors[0].Level)
}

func TestReadEntries_structuredFieldsSurviveInRaw(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	log, err := logging.New(testConfig(dir))
	require.NoError(t, err)

	log.WithField("version", 3).Info("applying migration")
	require.NoError(t, log.Close())

	entries, err := logging.ReadEntries(dir, 0, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Raw, `"version":3`)
	assert.NotEmpty(t, entries[0].Time)
}

func TestReadEntries_missingDirectory(t *testing.T) {
	t.Parallel()

	entries, err := logging.ReadEntries(filepath.Join(t.TempDir(), "none"), 10, "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadEntries_skipsNonJSONLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "not json at all\n" + `{"time":"t","level":"info","msg":"ok"}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appkit.log"), []byte(content), 0o644))

	entries, err := logging.ReadEntries(dir, 0, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Message)
}
