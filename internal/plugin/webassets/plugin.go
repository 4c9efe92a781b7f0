// Package webassets is the plugin that gives a site build its asset
// environment and exposes it to templates.
package webassets

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/bundler"
	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/metrics"
	"git.home.luguber.info/inful/webassets/internal/plugin"
	"git.home.luguber.info/inful/webassets/internal/version"
)

const (
	Name = "webassets"

	// EnvironmentKey is the PluginContext.Data key holding the *assets.Environment.
	EnvironmentKey = "webassets.environment"
)

// Options configures the plugin. The zero value looks up the concat backend in
// the default bundler registry.
type Options struct {
	Backend  string
	Backends *bundler.Registry
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Plugin resolves the asset environment once per build.
type Plugin struct {
	plugin.BasePlugin

	opts    Options
	backend bundler.Bundler
	enabled bool

	mu     sync.RWMutex
	env    *assets.Environment
	runner *bundler.Runner
}

func New(opts Options) *Plugin {
	if opts.Backend == "" {
		opts.Backend = config.DefaultBundler
	}
	if opts.Backends == nil {
		opts.Backends = bundler.DefaultRegistry()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Plugin{opts: opts}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     version.Version,
		Type:        plugin.PluginTypeAssets,
		Description: "Bundles theme assets and exposes their URLs to templates",
		Capabilities: []string{
			plugin.CapabilityBundling.String(),
			plugin.CapabilityTemplateFuncs.String(),
		},
	}
}

// Init looks up the bundler backend. A missing backend disables the plugin
// with a warning instead of failing the build.
func (p *Plugin) Init() error {
	b, err := p.opts.Backends.Lookup(p.opts.Backend)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryDependency) {
			p.opts.Logger.Warn("failed to load 'webassets' dependencies",
				logfields.Backend(p.opts.Backend), logfields.Error(err))
			p.enabled = false
			p.opts.Recorder.IncResolution(metrics.ResultDisabled)
			return nil
		}
		return err
	}
	p.backend = b
	p.enabled = true
	return nil
}

func (p *Plugin) Enabled() bool { return p.enabled }

// Execute creates the build's environment and publishes it in pluginCtx.Data.
func (p *Plugin) Execute(ctx context.Context, pluginCtx *plugin.PluginContext) error {
	if !p.enabled {
		return errors.InternalError("webassets plugin executed before a successful Init").Build()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	env, err := assets.Create(pluginCtx.Settings, pluginCtx.OutputDir, assets.Options{
		Logger:       pluginCtx.Logger,
		Recorder:     p.opts.Recorder,
		AmbientLevel: foundation.Some(pluginCtx.AmbientLevel),
		BuildID:      pluginCtx.BuildID,
		ThemeDir:     pluginCtx.ThemeDir,
	})
	if err != nil {
		return err
	}

	runner := bundler.NewRunner(p.backend, env, pluginCtx.Logger)
	runner.Recorder = p.opts.Recorder

	p.mu.Lock()
	p.env, p.runner = env, runner
	p.mu.Unlock()

	if pluginCtx.Data == nil {
		pluginCtx.Data = make(map[string]any)
	}
	pluginCtx.Data[EnvironmentKey] = env
	return nil
}

// Environment returns the environment of the last Execute, or nil.
func (p *Plugin) Environment() *assets.Environment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.env
}

// Runner returns the bundle runner of the last Execute, or nil.
func (p *Plugin) Runner() *bundler.Runner {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.runner
}

func (p *Plugin) ready() (*assets.Environment, *bundler.Runner, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.env == nil {
		return nil, nil, fmt.Errorf("webassets: asset environment is not ready")
	}
	return p.env, p.runner, nil
}

// TemplateFuncs returns the template helpers:
//
//	asset_url PATH          URL of a file below the static dir
//	assets NAME             builds bundle NAME and returns its URL
//	stylesheet_tag URL      <link rel="stylesheet"> element
//	script_tag URL          <script> element
//	site_url SITEURL URL    SITEURL and URL joined with one slash
//	relative_site_url DEPTH SITEURL for a page DEPTH directories deep
func (p *Plugin) TemplateFuncs(pluginCtx *plugin.PluginContext) template.FuncMap {
	ctx := context.Background()
	if pluginCtx != nil && pluginCtx.Context != nil {
		ctx = pluginCtx.Context
	}
	return template.FuncMap{
		"asset_url": func(path string) (string, error) {
			env, _, err := p.ready()
			if err != nil {
				return "", err
			}
			return env.URLFor(path), nil
		},
		"assets": func(name string) (string, error) {
			_, runner, err := p.ready()
			if err != nil {
				return "", err
			}
			return runner.URL(ctx, name)
		},
		"stylesheet_tag": func(href string) (template.HTML, error) {
			tag, err := assets.StylesheetTag(href)
			return template.HTML(tag), err //nolint:gosec // rendered by x/net/html with escaped attributes
		},
		"script_tag": func(src string) (template.HTML, error) {
			tag, err := assets.ScriptTag(src)
			return template.HTML(tag), err //nolint:gosec // rendered by x/net/html with escaped attributes
		},
		"site_url":          assets.ComposeURL,
		"relative_site_url": assets.RelativeSiteURL,
	}
}

var (
	_ plugin.PluginLifecycle = (*Plugin)(nil)
	_ plugin.TemplatePlugin  = (*Plugin)(nil)
	_ plugin.Toggle          = (*Plugin)(nil)
)
