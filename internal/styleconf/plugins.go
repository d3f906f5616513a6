package styleconf

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"chatblack/internal/palette"
)

var (
	// ErrUnknownPlugin reports a plugins entry that no registered plugin
	// answers to.
	ErrUnknownPlugin = errors.New("styleconf: unknown plugin")

	// ErrDuplicatePlugin reports a second registration under the same name.
	ErrDuplicatePlugin = errors.New("styleconf: plugin already registered")
)

// Rule is one CSS rule contributed by a plugin, rendered after the palette
// variables block.
type Rule struct {
	Selector string
	Body     string
}

// Plugin extends the generated stylesheet. Implementations must be safe for
// concurrent use; Rules is called on every render.
type Plugin interface {
	Name() string
	Rules(pal palette.Palette) []Rule
}

// Registry holds the plugins a config may reference by name. The zero value
// is unusable; construct with NewRegistry. The shipped configuration
// references none, so a service can run with an empty registry forever.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin under its own name.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePlugin, name)
	}
	r.plugins[name] = p
	return nil
}

// Resolve maps config plugin references to registered plugins, preserving
// config order. Any unknown reference fails the whole resolution.
func (r *Registry) Resolve(names []string) ([]Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved := make([]Plugin, 0, len(names))
	for _, name := range names {
		p, ok := r.plugins[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
