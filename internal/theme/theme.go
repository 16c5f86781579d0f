// Package theme is a static registry of CSS-variable themes with a
// persisted active selection.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/appkit-go/appkit/internal/settings"
)

// Mode says whether a theme is light, dark, or follows the system.
type Mode string

// Theme modes.
const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// ErrThemeNotFound indicates the requested theme name is not registered.
var ErrThemeNotFound = errors.New("theme not found")

// Settings location of the persisted active selection.
const (
	settingsNamespace = "theme"
	activeKey         = "active"
)

// Definition is a complete theme: a name, a mode, and its CSS variables.
type Definition struct {
	Name      string            `json:"name"`
	Mode      Mode              `json:"mode"`
	Variables map[string]string `json:"variables"`
}

// Registry holds the registered themes and tracks the active selection,
// persisting it through a settings backend.
type Registry struct {
	themes  []Definition
	backend settings.Backend
	active  string
}

// NewRegistry creates a registry over the given themes. fallback must name
// one of them; a previously persisted selection takes precedence when it
// still names a registered theme.
func NewRegistry(ctx context.Context, themes []Definition, fallback string, backend settings.Backend) (*Registry, error) {
	r := &Registry{themes: themes, backend: backend}

	if r.lookup(fallback) == nil {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, fallback)
	}

	r.active = fallback

	stored, err := backend.Get(ctx, settingsNamespace, activeKey)
	if err != nil {
		if settings.IsNotFound(err) {
			return r, nil
		}

		return nil, err
	}

	var name string
	// A stale or malformed persisted selection falls back silently.
	if json.Unmarshal(stored, &name) == nil && r.lookup(name) != nil {
		r.active = name
	}

	return r, nil
}

// List returns all registered themes.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.themes))
	copy(out, r.themes)

	return out
}

// Active returns the currently selected theme.
func (r *Registry) Active() Definition {
	return *r.lookup(r.active)
}

// SetActive switches to the named theme and persists the selection.
func (r *Registry) SetActive(ctx context.Context, name string) (Definition, error) {
	def := r.lookup(name)
	if def == nil {
		return Definition{}, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	encoded, err := json.Marshal(name)
	if err != nil {
		return Definition{}, fmt.Errorf("encoding theme name: %w", err)
	}

	if err := r.backend.Set(ctx, settingsNamespace, activeKey, encoded); err != nil {
		return Definition{}, err
	}

	r.active = name

	return *def, nil
}

// CSS renders the active theme as a :root block, variables in
// alphabetical order for deterministic output.
func (r *Registry) CSS() string {
	def := r.Active()

	names := make([]string, 0, len(def.Variables))
	for name := range def.Variables {
		names = append(names, name)
	}

	sort.Strings(names)

	var b strings.Builder

	b.WriteString(":root {\n")

	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, def.Variables[name])
	}

	b.WriteString("}")

	return b.String()
}

func (r *Registry) lookup(name string) *Definition {
	for i := range r.themes {
		if r.themes[i].Name == name {
			return &r.themes[i]
		}
	}

	return nil
}
