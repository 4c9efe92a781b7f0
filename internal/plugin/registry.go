package plugin

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"sync"
)

// Registry manages plugin registration and discovery.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Plugin // map[name]map[version]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[metadata.Name] == nil {
		r.plugins[metadata.Name] = make(map[string]Plugin)
	}
	if _, exists := r.plugins[metadata.Name][metadata.Version]; exists {
		return fmt.Errorf("plugin %s@%s already registered", metadata.Name, metadata.Version)
	}

	r.plugins[metadata.Name][metadata.Version] = plugin
	return nil
}

// Get retrieves a specific plugin by name and version.
func (r *Registry) Get(name, version string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	plugin, ok := versions[version]
	if !ok {
		return nil, fmt.Errorf("plugin %s@%s not found", name, version)
	}
	return plugin, nil
}

// GetLatest returns the registered version of name that sorts last.
func (r *Registry) GetLatest(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.plugins[name]
	if !ok || len(versions) == 0 {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	keys := make([]string, 0, len(versions))
	for v := range versions {
		keys = append(keys, v)
	}
	slices.SortFunc(keys, compareVersions)
	return versions[keys[len(keys)-1]], nil
}

// List returns all registered plugins ordered by name, then version.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Plugin
	for _, versions := range r.plugins {
		for _, plugin := range versions {
			result = append(result, plugin)
		}
	}
	slices.SortFunc(result, func(a, b Plugin) int {
		ma, mb := a.Metadata(), b.Metadata()
		if c := cmp.Compare(ma.Name, mb.Name); c != 0 {
			return c
		}
		return compareVersions(ma.Version, mb.Version)
	})
	return result
}

// ListByType returns all plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, plugin := range r.List() {
		if plugin.Metadata().Type == pluginType {
			result = append(result, plugin)
		}
	}
	return result
}

// Has checks if a plugin with the given name exists (any version).
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[name]
	return ok
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.plugins[name]
	if !ok {
		return fmt.Errorf("plugin %s not found", name)
	}
	if _, ok := versions[version]; !ok {
		return fmt.Errorf("plugin %s@%s not found", name, version)
	}

	delete(versions, version)
	if len(versions) == 0 {
		delete(r.plugins, name)
	}
	return nil
}

// Count returns the total number of registered plugins (all versions).
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, versions := range r.plugins {
		count += len(versions)
	}
	return count
}

// compareVersions orders "v1.2.10" after "v1.2.9". Non-numeric parts compare
// as strings.
func compareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		if errA == nil && errB == nil {
			if c := cmp.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if c := cmp.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(pa), len(pb))
}

func versionParts(v string) []string {
	if len(v) > 0 && (v[0] == 'v' || v[0] == 'V') {
		v = v[1:]
	}
	var parts []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == '.' || v[i] == '-' {
			parts = append(parts, v[start:i])
			start = i + 1
		}
	}
	return parts
}

var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin to the global registry.
func Register(plugin Plugin) error {
	return globalRegistry.Register(plugin)
}
