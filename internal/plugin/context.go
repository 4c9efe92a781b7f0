package plugin

import (
	"context"
	"log/slog"
	"maps"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/resolve"
)

// PluginContext is what the host hands to plugins for one build.
type PluginContext struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	Logger *slog.Logger

	// Settings are the host build settings.
	Settings *config.Settings

	// ThemeDir is the theme root that static paths are relative to.
	ThemeDir string

	// OutputDir is the root of the generated site.
	OutputDir string

	// BuildID uniquely identifies this build.
	BuildID string

	// AmbientLevel is the host's log level.
	AmbientLevel slog.Level

	// Data lets plugins share state during a build without importing each other.
	Data map[string]any
}

// NewPluginContext creates a plugin context for one build. A nil logger means
// slog.Default(); the ambient level is read from the logger.
func NewPluginContext(
	ctx context.Context,
	logger *slog.Logger,
	settings *config.Settings,
	outputDir, buildID string,
) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	themeDir := ""
	if settings != nil {
		themeDir = settings.Theme
	}
	return &PluginContext{
		Context:      ctx,
		Logger:       logger.With(logfields.BuildID(buildID)),
		Settings:     settings,
		ThemeDir:     themeDir,
		OutputDir:    outputDir,
		BuildID:      buildID,
		AmbientLevel: resolve.AmbientLevel(ctx, logger),
		Data:         make(map[string]any),
	}
}

// WithValue returns a copy of the context with the given key-value pair in Data.
func (pc *PluginContext) WithValue(key string, value any) *PluginContext {
	next := *pc
	next.Data = maps.Clone(pc.Data)
	if next.Data == nil {
		next.Data = make(map[string]any, 1)
	}
	next.Data[key] = value
	return &next
}

// GetValue retrieves a value from the plugin data map, or nil.
func (pc *PluginContext) GetValue(key string) any {
	return pc.Data[key]
}
