package tracker

import "errors"

// ErrTableCreation indicates the _migrations table could not be created.
var ErrTableCreation = errors.New("creating _migrations table")

// ErrRecordNotFound indicates no tracking record exists for the given version.
var ErrRecordNotFound = errors.New("migration record not found")
