package bundler

import (
	"fmt"
	"slices"
	"sync"

	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// Registry holds bundler backends by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Bundler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Bundler)}
}

// Register adds a backend. Names must be unique.
func (r *Registry) Register(b Bundler) error {
	if b == nil {
		return errors.ValidationError("cannot register nil bundler").Build()
	}
	name := b.Name()
	if name == "" {
		return errors.ValidationError("bundler name is required").Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return errors.ValidationError(fmt.Sprintf("bundler %s already registered", name)).Build()
	}
	r.backends[name] = b
	return nil
}

// Lookup returns the named backend. A missing backend is a dependency error:
// callers are expected to carry on without bundling.
func (r *Registry) Lookup(name string) (Bundler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[name]
	if !ok {
		return nil, errors.DependencyError(fmt.Sprintf("bundler backend %q is not available", name)).
			WithContext("backend", name).
			WithContext("available", r.namesLocked()).
			Build()
	}
	return b, nil
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.backends[name]
	return ok
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.backends[name]; !ok {
		return errors.ValidationError(fmt.Sprintf("bundler %s not found", name)).Build()
	}
	delete(r.backends, name)
	return nil
}

var globalRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a backend to the default registry.
func Register(b Bundler) error {
	return globalRegistry.Register(b)
}

// Lookup finds a backend in the default registry.
func Lookup(name string) (Bundler, error) {
	return globalRegistry.Lookup(name)
}
