package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	defaultMaxConns    = 5
	defaultBusyTimeout = 5 * time.Second
)

// sessionPragmas is executed on every acquired connection so that all
// connections share the same baseline session state, regardless of how
// many the pool holds.
const sessionPragmas = `PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`

// Pool manages a bounded set of connections to a single SQLite database,
// either file-backed or a shared in-memory instance. Every connection
// handed out by Acquire has WAL journaling and foreign-key enforcement
// enabled.
type Pool struct {
	db          *sql.DB
	busyTimeout time.Duration
}

// Option configures a Pool.
type Option func(*Pool)

// WithBusyTimeout sets the per-connection busy_timeout pragma, the time a
// connection waits on a locked database before failing.
func WithBusyTimeout(d time.Duration) Option {
	return func(p *Pool) { p.busyTimeout = d }
}

// Open opens or creates a SQLite database file at the given path and
// returns a pool over it. The database is pinged to verify it can actually
// be opened and configured.
func Open(path string, opts ...Option) (*Pool, error) {
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	db.SetMaxOpenConns(defaultMaxConns)

	return newPool(db, opts)
}

// OpenInMemory creates a pool over a single in-memory database. The pool
// is capped at exactly one physical connection: SQLite in-memory databases
// are private to the connection that created them, so a larger pool would
// hand out connections to different empty databases.
func OpenInMemory(opts ...Option) (*Pool, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	return newPool(db, opts)
}

func newPool(db *sql.DB, opts []Option) (*Pool, error) {
	p := &Pool{
		db:          db,
		busyTimeout: defaultBusyTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck // already failing

		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return p, nil
}

// Acquire blocks until a connection is available, applies the session
// pragmas, and returns it. The caller must call Release on the returned
// connection on every exit path.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquireFailed, err)
	}

	if _, err := conn.ExecContext(ctx, sessionPragmas); err != nil {
		conn.Close() //nolint:errcheck // already failing

		return nil, fmt.Errorf("%w: configuring session: %w", ErrAcquireFailed, err)
	}

	timeout := fmt.Sprintf("PRAGMA busy_timeout=%d;", p.busyTimeout.Milliseconds())
	if _, err := conn.ExecContext(ctx, timeout); err != nil {
		conn.Close() //nolint:errcheck // already failing

		return nil, fmt.Errorf("%w: configuring busy_timeout: %w", ErrAcquireFailed, err)
	}

	return &Conn{conn: conn}, nil
}

// Close closes the pool and all idle connections.
func (p *Pool) Close() error {
	return p.db.Close()
}

// Conn is a single pooled connection with the session pragmas applied.
type Conn struct {
	conn *sql.Conn
}

// ExecContext executes a statement (or a batch of statements when no
// arguments are given) on this connection.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

// QueryContext executes a query on this connection.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a single-row query on this connection.
func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.conn.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction on this connection.
func (c *Conn) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return tx, nil
}

// Release returns the connection to the pool. Safe to call multiple times;
// subsequent calls are no-ops.
func (c *Conn) Release() {
	if c == nil || c.conn == nil {
		return
	}

	c.conn.Close() //nolint:errcheck // returning to pool
	c.conn = nil
}
