package migration

import (
	"crypto/sha256"
	"encoding/hex"
)

// Migration is a single versioned schema change. Version is the sole
// ordering and identity key; Name is a human-readable label. A migration
// with an empty DownSQL is irreversible.
type Migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

// Reversible reports whether the migration has a down script.
func (m *Migration) Reversible() bool {
	return m.DownSQL != ""
}

// ComputeChecksum returns the SHA-256 hex digest of the exact bytes of the
// given SQL. Recorded at apply time and recomputed on every later apply to
// detect edits to already-applied migrations.
func ComputeChecksum(sql string) string {
	h := sha256.Sum256([]byte(sql))

	return hex.EncodeToString(h[:])
}
