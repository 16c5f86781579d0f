package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/appkit-go/appkit/internal/database"
	"github.com/appkit-go/appkit/internal/engine"
	"github.com/appkit-go/appkit/internal/logging"
	"github.com/appkit-go/appkit/internal/settings"
	"github.com/appkit-go/appkit/internal/theme"
)

// openPool opens the configured database file.
func openPool() (*database.Pool, error) {
	pool, err := database.Open(AppConfig.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", AppConfig.DatabasePath, err)
	}

	return pool, nil
}

// newLogger builds the file logger from the loaded configuration.
func newLogger() (*logging.Logger, error) {
	cfg := logging.DefaultConfig(AppConfig.LogDir)
	cfg.Rotation = logging.Rotation(AppConfig.LogRotation)
	cfg.RetentionDays = AppConfig.LogRetentionDays
	cfg.Level = AppConfig.LogLevel
	cfg.ConsoleOutput = false

	log, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening log directory %s: %w", AppConfig.LogDir, err)
	}

	return log, nil
}

// newEngine opens the pool and logger and wires them into an Engine with
// migrations loaded from the configured directory. The returned closer
// releases both.
func newEngine(out io.Writer) (*engine.Engine, func(), error) {
	pool, err := openPool()
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger()
	if err != nil {
		pool.Close() //nolint:errcheck,gosec // already failing

		return nil, nil, err
	}

	eng := engine.New(pool,
		engine.WithLogger(log),
		engine.WithProgressCallback(progressPrinter(out)),
	)

	if err := eng.RegisterFromDir(AppConfig.MigrationsDir); err != nil {
		log.Close()  //nolint:errcheck,gosec // already failing
		pool.Close() //nolint:errcheck,gosec // already failing

		return nil, nil, fmt.Errorf("loading migrations from %s: %w", AppConfig.MigrationsDir, err)
	}

	closer := func() {
		log.Close()  //nolint:errcheck,gosec // best-effort shutdown
		pool.Close() //nolint:errcheck,gosec // best-effort shutdown
	}

	return eng, closer, nil
}

// progressPrinter renders engine progress events as terminal output.
func progressPrinter(out io.Writer) func(engine.ProgressEvent) {
	return func(event engine.ProgressEvent) {
		m := event.Migration

		switch event.Status {
		case engine.StatusStarting:
			fmt.Fprintf(out, "Applying %d_%s ... ", m.Version, m.Name)
		case engine.StatusCompleted:
			fmt.Fprintf(out, "done (%s)\n", event.Duration.Round(time.Millisecond))
		case engine.StatusFailed:
			fmt.Fprintf(out, "FAILED: %v\n", event.Error)
		case engine.StatusSkipped:
			fmt.Fprintf(out, "Skipping %d_%s (already applied)\n", m.Version, m.Name)
		case engine.StatusRolledBack:
			fmt.Fprintf(out, "Rolled back %d_%s\n", m.Version, m.Name)
		}
	}
}

// newSettingsStore opens the pool and builds the settings store on it.
func newSettingsStore(ctx context.Context) (*settings.Store, func(), error) {
	pool, err := openPool()
	if err != nil {
		return nil, nil, err
	}

	store, err := settings.NewStore(ctx, pool)
	if err != nil {
		pool.Close() //nolint:errcheck,gosec // already failing

		return nil, nil, err
	}

	closer := func() {
		pool.Close() //nolint:errcheck,gosec // best-effort shutdown
	}

	return store, closer, nil
}

// newThemeRegistry builds the default theme registry over a settings store.
func newThemeRegistry(ctx context.Context) (*theme.Registry, func(), error) {
	store, closer, err := newSettingsStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	registry, err := theme.NewRegistry(ctx, theme.DefaultThemes(), "light", store)
	if err != nil {
		closer()

		return nil, nil, err
	}

	return registry, closer, nil
}
