package settings

import (
	"context"
	"encoding/json"
	"fmt"
)

// Field describes one typed setting: its key within the namespace and its
// default value as JSON.
type Field struct {
	Name    string
	Default json.RawMessage
}

// Descriptor is a data-driven description of a settings type: a namespace
// plus a static table of fields with defaults. Generic load/save and
// per-field access are derived from the table, so settings types need no
// code generation or reflection.
type Descriptor struct {
	Namespace string
	Fields    []Field
}

// Load reads all described fields from the backend, filling missing ones
// with their defaults.
func (d *Descriptor) Load(ctx context.Context, b Backend) (map[string]json.RawMessage, error) {
	stored, err := b.GetAll(ctx, d.Namespace)
	if err != nil {
		return nil, err
	}

	values := make(map[string]json.RawMessage, len(d.Fields))

	for _, f := range d.Fields {
		if v, ok := stored[f.Name]; ok {
			values[f.Name] = v
			continue
		}

		values[f.Name] = f.Default
	}

	return values, nil
}

// Save writes every provided field to the backend. Unknown field names are
// rejected before anything is written.
func (d *Descriptor) Save(ctx context.Context, b Backend, values map[string]json.RawMessage) error {
	for name := range values {
		if d.field(name) == nil {
			return fmt.Errorf("%s.%s: %w", d.Namespace, name, ErrUnknownField)
		}
	}

	for name, value := range values {
		if err := b.Set(ctx, d.Namespace, name, value); err != nil {
			return err
		}
	}

	return nil
}

// GetField returns one field's stored value, or its default when unset.
func (d *Descriptor) GetField(ctx context.Context, b Backend, name string) (json.RawMessage, error) {
	f := d.field(name)
	if f == nil {
		return nil, fmt.Errorf("%s.%s: %w", d.Namespace, name, ErrUnknownField)
	}

	value, err := b.Get(ctx, d.Namespace, name)
	if err != nil {
		if IsNotFound(err) {
			return f.Default, nil
		}

		return nil, err
	}

	return value, nil
}

// SetField writes one field's value.
func (d *Descriptor) SetField(ctx context.Context, b Backend, name string, value json.RawMessage) error {
	if d.field(name) == nil {
		return fmt.Errorf("%s.%s: %w", d.Namespace, name, ErrUnknownField)
	}

	return b.Set(ctx, d.Namespace, name, value)
}

func (d *Descriptor) field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}

	return nil
}
