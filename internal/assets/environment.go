package assets

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// CurrentDir is the URL prefix used when the static directory is empty.
const CurrentDir = "."

// State is the lifecycle position of an Environment.
type State int

const (
	StateUnconfigured State = iota
	StateConfiguring
	StatePopulated
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfiguring:
		return "configuring"
	case StatePopulated:
		return "populated"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Environment is the asset environment of a single build.
type Environment struct {
	state      State
	configured bool

	directory string
	url       string
	config    map[string]any
	registry  *Registry
	debug     bool
	loadPath  []string
	buildID   string
}

// NewEnvironment returns an unconfigured environment.
func NewEnvironment() *Environment {
	return &Environment{
		config:   make(map[string]any),
		registry: NewRegistry(),
	}
}

// Configure sets the output directory and URL prefix. It must be called exactly
// once, before ApplyConfig.
//
// The prefix keeps its bytes as given so URLs name the same path the bundler
// writes to. Trailing slashes are dropped; if nothing is left it becomes ".",
// so URLFor never yields a leading "/" on relative sites.
func (e *Environment) Configure(directory, baseURL string) error {
	if e.state != StateUnconfigured || e.configured {
		return e.transitionError("Configure", StateUnconfigured)
	}
	e.directory = directory
	e.url = normalizeBaseURL(baseURL)
	e.configured = true
	return nil
}

func normalizeBaseURL(u string) string {
	u = strings.TrimRight(u, "/")
	if u == "" {
		return CurrentDir
	}
	return u
}

// ApplyConfig copies entries into the bundler configuration. Later entries
// overwrite earlier ones with the same key.
func (e *Environment) ApplyConfig(entries []config.ConfigEntry) error {
	if e.state != StateUnconfigured || !e.configured {
		return e.transitionError("ApplyConfig", StateUnconfigured)
	}
	for _, entry := range entries {
		e.config[entry.Key] = entry.Value
	}
	e.state = StateConfiguring
	return nil
}

// RegisterBundles adds entries to the registry in order. On error the state is
// left unchanged but bundles registered before the failing entry remain.
func (e *Environment) RegisterBundles(entries []config.BundleEntry) error {
	if e.state != StateConfiguring {
		return e.transitionError("RegisterBundles", StateConfiguring)
	}
	if err := e.registry.RegisterAll(entries); err != nil {
		return err
	}
	e.state = StatePopulated
	return nil
}

// Finalize fixes the debug flag and the source search paths.
func (e *Environment) Finalize(debug bool, loadPath []string) error {
	if e.state != StatePopulated {
		return e.transitionError("Finalize", StatePopulated)
	}
	e.debug = debug
	e.loadPath = slices.Clone(loadPath)
	e.state = StateFinalized
	return nil
}

func (e *Environment) transitionError(op string, want State) error {
	return errors.InternalError(fmt.Sprintf("asset environment: %s called in state %s", op, e.state)).
		WithContext("operation", op).
		WithContext("state", e.state.String()).
		WithContext("expected_state", want.String()).
		Build()
}

func (e *Environment) State() State { return e.state }

// Directory is where built bundles are written.
func (e *Environment) Directory() string { return e.directory }

// URL is the normalized prefix for asset URLs. It is never empty once configured.
func (e *Environment) URL() string { return e.url }

func (e *Environment) Debug() bool { return e.debug }

func (e *Environment) BuildID() string { return e.buildID }

// LoadPath returns a copy of the source search paths in search order.
func (e *Environment) LoadPath() []string { return slices.Clone(e.loadPath) }

// Config returns a copy of the bundler configuration.
func (e *Environment) Config() map[string]any { return maps.Clone(e.config) }

// ConfigValue looks up one bundler configuration key.
func (e *Environment) ConfigValue(key string) (any, bool) {
	v, ok := e.config[key]
	return v, ok
}

func (e *Environment) Bundles() *Registry { return e.registry }

// URLFor joins the prefix and p with exactly one slash.
func (e *Environment) URLFor(p string) string {
	base := e.url
	if base == "" {
		base = CurrentDir
	}
	return base + "/" + strings.TrimLeft(p, "/")
}

// Snapshot is a serializable view of an environment.
type Snapshot struct {
	BuildID   string               `yaml:"build_id,omitempty"`
	State     string               `yaml:"state"`
	URL       string               `yaml:"url"`
	Directory string               `yaml:"directory"`
	Debug     bool                 `yaml:"debug"`
	Config    map[string]any       `yaml:"config,omitempty"`
	Bundles   []config.BundleEntry `yaml:"bundles,omitempty"`
	LoadPath  []string             `yaml:"load_path,omitempty"`
}

func (e *Environment) Snapshot() Snapshot {
	s := Snapshot{
		BuildID:   e.buildID,
		State:     e.state.String(),
		URL:       e.url,
		Directory: e.directory,
		Debug:     e.debug,
		Config:    e.Config(),
		LoadPath:  e.LoadPath(),
	}
	for _, b := range e.registry.All() {
		s.Bundles = append(s.Bundles, config.BundleEntry{Name: b.Name, Contents: b.Contents, Options: b.Options})
	}
	return s
}
