package bundler

import (
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// Manifest maps bundle names to their built output paths (relative to the
// environment URL). It is safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read bundle manifest").
			WithContext("path", path).
			Build()
	}
	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode bundle manifest").
			WithContext("path", path).
			Build()
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the output recorded for bundle, or ok=false.
func (m *Manifest) Resolve(bundle string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, ok := m.entries[bundle]
	return out, ok
}

func (m *Manifest) Set(bundle, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[bundle] = output
}

func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// All returns a copy of the entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.entries)
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m.All())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode bundle manifest").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write bundle manifest").
			WithContext("path", path).
			Build()
	}
	return nil
}
