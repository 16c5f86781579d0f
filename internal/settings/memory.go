package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-memory Backend, a drop-in substitute for Store in tests
// and ephemeral setups.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]json.RawMessage)}
}

// Get returns the value for a key, or ErrSettingNotFound.
func (m *Memory) Get(_ context.Context, namespace, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[namespace][key]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", namespace, key, ErrSettingNotFound)
	}

	return value, nil
}

// Set stores a value, overwriting any previous one.
func (m *Memory) Set(_ context.Context, namespace, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%s.%s: %w", namespace, key, ErrInvalidValue)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]json.RawMessage)
		m.data[namespace] = ns
	}

	ns[key] = append(json.RawMessage(nil), value...)

	return nil
}

// GetAll returns every key-value pair in a namespace.
func (m *Memory) GetAll(_ context.Context, namespace string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]json.RawMessage, len(m.data[namespace]))
	for key, value := range m.data[namespace] {
		all[key] = value
	}

	return all, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[namespace], key)

	return nil
}
