// Package settings is a namespaced key-value store for application
// settings, persisted as JSON values. The SQLite backend shares the
// application's connection pool; the in-memory backend substitutes for it
// in tests or ephemeral setups.
package settings

import (
	"context"
	"encoding/json"
)

// Backend stores JSON-encoded setting values addressed by (namespace, key).
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value for a key, or ErrSettingNotFound.
	Get(ctx context.Context, namespace, key string) (json.RawMessage, error)
	// Set stores a value, overwriting any previous one.
	Set(ctx context.Context, namespace, key string, value json.RawMessage) error
	// GetAll returns every key-value pair in a namespace.
	GetAll(ctx context.Context, namespace string) (map[string]json.RawMessage, error)
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, namespace, key string) error
}
