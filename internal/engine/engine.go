// Package engine applies versioned schema migrations exactly once, in
// ascending version order, inside atomic transactions. It verifies the
// checksum of already-applied migrations on every run and supports
// single-step rollback of the most recently applied change.
//
// The engine performs no internal mutual exclusion across calls. Callers
// that share an Engine must serialize apply, rollback, and status calls;
// interleaved writers could race on the highest-applied-version read.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/appkit-go/appkit/internal/database"
	"github.com/appkit-go/appkit/internal/migration"
	"github.com/appkit-go/appkit/internal/tracker"
)

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting   = "starting"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusSkipped    = "skipped"
	StatusRolledBack = "rolled_back"
)

// ProgressEvent is emitted for each migration the engine processes.
type ProgressEvent struct {
	Migration *migration.Migration
	Status    string
	Duration  time.Duration
	Error     error
}

// Status is the derived, read-only view of one registered migration.
type Status struct {
	Version   int64  `json:"version"`
	Name      string `json:"name"`
	Applied   bool   `json:"applied"`
	AppliedAt string `json:"applied_at,omitempty"`
}

// Engine owns the migration registry and runs apply, rollback, and status
// operations against a shared connection pool. Each operation acquires a
// connection, runs its work, and releases the connection before returning.
type Engine struct {
	pool       *database.Pool
	registry   []migration.Migration
	log        logrus.FieldLogger
	onProgress func(ProgressEvent)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger the engine reports to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithProgressCallback sets a function called for each migration processed.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(e *Engine) { e.onProgress = fn }
}

// New creates an Engine over the given pool. Migrations must be registered
// before any apply, rollback, or status call.
func New(pool *database.Pool, opts ...Option) *Engine {
	e := &Engine{pool: pool}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		e.log = discard
	}

	return e
}

// Register inserts or replaces (by version) a migration definition and
// re-sorts the registry. Pure in-memory; idempotent per version. The last
// registration of a version wins.
func (e *Engine) Register(m migration.Migration) {
	for i := range e.registry {
		if e.registry[i].Version == m.Version {
			e.registry[i] = m
			return
		}
	}

	e.registry = append(e.registry, m)
	e.registry = migration.Sort(e.registry)
}

// RegisterFromDir loads {version}_{name}.sql files from dir and registers
// them. All-or-nothing: any malformed filename fails the call and leaves
// the registry unchanged.
func (e *Engine) RegisterFromDir(dir string) error {
	loaded, err := migration.LoadFromDir(dir)
	if err != nil {
		return err
	}

	for _, m := range loaded {
		e.Register(m)
	}

	return nil
}

// Registered returns the registry in ascending version order.
func (e *Engine) Registered() []migration.Migration {
	out := make([]migration.Migration, len(e.registry))
	copy(out, e.registry)

	return out
}

// ApplyPending applies every registered-but-unapplied migration in
// ascending version order, each in its own transaction. Already-applied
// migrations are verified against their recorded checksum; any mismatch
// aborts the whole run. Returns the full status view reflecting the
// outcome.
func (e *Engine) ApplyPending(ctx context.Context) ([]Status, error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if err := tracker.EnsureTable(ctx, conn); err != nil {
		return nil, err
	}

	applied, err := tracker.GetApplied(ctx, conn)
	if err != nil {
		return nil, err
	}

	for i := range e.registry {
		m := &e.registry[i]

		record, isApplied := applied[m.Version]
		if isApplied {
			// Recomputed fresh every run so registry mutation is always caught.
			if checksum := migration.ComputeChecksum(m.UpSQL); checksum != record.Checksum {
				err := fmt.Errorf("migration %d (%s): %w: stored=%s computed=%s",
					m.Version, m.Name, ErrChecksumMismatch, record.Checksum, checksum)
				e.fireProgress(ProgressEvent{Migration: m, Status: StatusFailed, Error: err})

				return nil, err
			}

			e.fireProgress(ProgressEvent{Migration: m, Status: StatusSkipped})

			continue
		}

		if err := e.applyOne(ctx, conn, m); err != nil {
			return nil, err
		}
	}

	return e.statusOn(ctx, conn)
}

// applyOne executes one migration's up script and records it, atomically.
func (e *Engine) applyOne(ctx context.Context, conn *database.Conn, m *migration.Migration) error {
	e.fireProgress(ProgressEvent{Migration: m, Status: StatusStarting})
	e.log.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).Info("applying migration")

	start := time.Now()

	err := execInTransaction(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutionFailed, err)
		}

		return tracker.RecordApplied(ctx, tx, m.Version, m.Name, migration.ComputeChecksum(m.UpSQL))
	})

	duration := time.Since(start)

	if err != nil {
		e.fireProgress(ProgressEvent{Migration: m, Status: StatusFailed, Duration: duration, Error: err})
		e.log.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).WithError(err).Error("migration failed")

		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}

	e.fireProgress(ProgressEvent{Migration: m, Status: StatusCompleted, Duration: duration})

	return nil
}

// RollbackLast reverses exactly the single highest applied version using
// its down script. Returns (nil, nil) when nothing is applied. Never
// cascades: repeated calls roll back one version at a time.
func (e *Engine) RollbackLast(ctx context.Context) (*Status, error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if err := tracker.EnsureTable(ctx, conn); err != nil {
		return nil, err
	}

	applied, err := tracker.GetApplied(ctx, conn)
	if err != nil {
		return nil, err
	}

	if len(applied) == 0 {
		return nil, nil //nolint:nilnil // nil,nil signals "nothing to roll back"
	}

	var (
		last  int64
		found bool
	)

	// Versions are signed, so the maximum cannot be seeded with zero.
	for version := range applied {
		if !found || version > last {
			last = version
			found = true
		}
	}

	m := e.lookup(last)
	if m == nil {
		return nil, fmt.Errorf("migration %d: %w", last, ErrNotRegistered)
	}

	if !m.Reversible() {
		return nil, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, ErrMissingDownSQL)
	}

	err = execInTransaction(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.DownSQL); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutionFailed, err)
		}

		return tracker.DeleteRecord(ctx, tx, m.Version)
	})
	if err != nil {
		return nil, fmt.Errorf("rolling back migration %d (%s): %w", m.Version, m.Name, err)
	}

	e.fireProgress(ProgressEvent{Migration: m, Status: StatusRolledBack})
	e.log.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).Info("rolled back migration")

	return &Status{Version: m.Version, Name: m.Name, Applied: false}, nil
}

// Status reports every registered migration in ascending version order
// with its applied state. Read-only apart from tracking-table bootstrap.
func (e *Engine) Status(ctx context.Context) ([]Status, error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if err := tracker.EnsureTable(ctx, conn); err != nil {
		return nil, err
	}

	return e.statusOn(ctx, conn)
}

// statusOn maps the registry over the current tracking records using an
// already-acquired connection.
func (e *Engine) statusOn(ctx context.Context, conn *database.Conn) ([]Status, error) {
	applied, err := tracker.GetApplied(ctx, conn)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(e.registry))

	for i := range e.registry {
		m := &e.registry[i]
		s := Status{Version: m.Version, Name: m.Name}

		if record, ok := applied[m.Version]; ok {
			s.Applied = true
			s.AppliedAt = record.AppliedAt
		}

		statuses = append(statuses, s)
	}

	return statuses, nil
}

func (e *Engine) lookup(version int64) *migration.Migration {
	for i := range e.registry {
		if e.registry[i].Version == version {
			return &e.registry[i]
		}
	}

	return nil
}

func (e *Engine) fireProgress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
