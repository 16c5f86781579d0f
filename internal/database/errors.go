package database

import "errors"

// ErrConnectionFailed indicates the database file could not be opened or pinged.
var ErrConnectionFailed = errors.New("database connection failed")

// ErrAcquireFailed indicates a connection could not be acquired from the
// pool or its session could not be configured.
var ErrAcquireFailed = errors.New("connection acquisition failed")
