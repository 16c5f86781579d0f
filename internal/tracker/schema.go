package tracker

// createTableSQL is the DDL for the migration tracking table. Safe to
// execute on every engine operation.
const createTableSQL = `CREATE TABLE IF NOT EXISTS _migrations (
    version    INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    checksum   TEXT NOT NULL,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`
