package engine

import "errors"

// ErrChecksumMismatch indicates a registered migration's up script was
// edited after being applied to this database.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// ErrExecutionFailed indicates a migration's SQL failed to execute.
var ErrExecutionFailed = errors.New("migration execution failed")

// ErrMissingDownSQL indicates rollback was requested for an irreversible
// migration (no down script).
var ErrMissingDownSQL = errors.New("migration has no down SQL")

// ErrNotRegistered indicates the tracking table references a version that
// is absent from the registry, so the engine cannot reverse it.
var ErrNotRegistered = errors.New("migration is applied but not registered")
