// Package plugin is the extension surface a site generator uses to run
// build-time plugins such as the asset environment.
package plugin

import (
	"context"
	"fmt"
	"html/template"
)

// Plugin is a build-time extension with metadata and an execution hook.
type Plugin interface {
	// Metadata returns the plugin's name, version and type.
	Metadata() PluginMetadata

	// Validate checks the plugin's own configuration block, if any.
	Validate(config map[string]any) error

	// Execute runs once per build, after settings are loaded and before
	// templates render.
	Execute(ctx context.Context, pluginCtx *PluginContext) error
}

// PluginLifecycle extends Plugin with load and unload hooks.
type PluginLifecycle interface {
	Plugin

	// Init is called once when the plugin is loaded. Check optional
	// dependencies here.
	Init() error

	// Cleanup is called when the plugin is unloaded.
	Cleanup() error
}

// Toggle is implemented by plugins that can switch themselves off, typically
// from Init when a dependency is missing. Disabled plugins are not executed.
type Toggle interface {
	Enabled() bool
}

// TemplatePlugin contributes functions to the template renderer.
type TemplatePlugin interface {
	Plugin

	// TemplateFuncs returns the functions to merge into the renderer's FuncMap.
	// It is called after Execute.
	TemplateFuncs(pluginCtx *PluginContext) template.FuncMap
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "webassets").
	Name string

	// Version is the semantic version (e.g., "v2.0.0").
	Version string

	Type PluginType

	Description string
	Author      string

	// Capabilities lists optional features this plugin provides.
	Capabilities []string

	// Dependencies lists other plugins this plugin requires.
	Dependencies []PluginDependency
}

// PluginDependency describes a required or optional plugin dependency.
type PluginDependency struct {
	Name     string
	Version  string
	Optional bool
}

func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides no-op lifecycle methods for embedding.
type BasePlugin struct{}

func (b *BasePlugin) Init() error { return nil }

func (b *BasePlugin) Cleanup() error { return nil }

func (b *BasePlugin) Validate(config map[string]any) error { return nil }
