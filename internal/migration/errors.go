package migration

import "errors"

// ErrInvalidFilename indicates a migration filename does not match the
// required {version}_{name}.sql form.
var ErrInvalidFilename = errors.New("invalid migration filename")

// ErrInvalidVersion indicates the version prefix of a migration filename
// is not a non-negative base-10 integer.
var ErrInvalidVersion = errors.New("invalid version number in migration filename")
