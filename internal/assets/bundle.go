package assets

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// Bundle is a named group of source assets. Contents and Options are passed to
// the bundler untouched.
type Bundle struct {
	Name     string
	Contents []any
	Options  map[string]any
}

// Output returns the "output" option, or "" when the bundle does not set one.
func (b Bundle) Output() string {
	s, _ := b.Options["output"].(string)
	return s
}

// Registry maps bundle names to bundles. Registering an existing name replaces
// the earlier bundle but keeps its position in Names.
type Registry struct {
	bundles map[string]Bundle
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]Bundle)}
}

// Register adds or replaces the bundle called name.
func (r *Registry) Register(name string, contents []any, options map[string]any) error {
	if name == "" {
		return errors.ValidationError("bundle name cannot be empty").Build()
	}
	if _, exists := r.bundles[name]; !exists {
		r.order = append(r.order, name)
	}
	r.bundles[name] = Bundle{
		Name:     name,
		Contents: slices.Clone(contents),
		Options:  maps.Clone(options),
	}
	return nil
}

// RegisterAll registers entries in order, stopping at the first error.
func (r *Registry) RegisterAll(entries []config.BundleEntry) error {
	for _, e := range entries {
		if err := r.Register(e.Name, e.Contents, e.Options); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Get(name string) (Bundle, bool) {
	b, ok := r.bundles[name]
	return b, ok
}

// Names lists bundle names in first-registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

func (r *Registry) Len() int {
	return len(r.bundles)
}

// All returns the bundles in Names order.
func (r *Registry) All() []Bundle {
	out := make([]Bundle, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.bundles[name])
	}
	return out
}
