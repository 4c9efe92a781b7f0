package assets

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/metrics"
	"git.home.luguber.info/inful/webassets/internal/resolve"
)

// Options tunes Create. The zero value is usable.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder

	// AmbientLevel is the host's log level. When unset it is read from Logger.
	AmbientLevel foundation.Option[slog.Level]

	// BuildID identifies the build in logs. A random UUID is used when empty.
	BuildID string

	// ThemeDir is the root that source paths are relative to. Settings.Theme
	// when empty.
	ThemeDir string
}

// Create resolves settings into a finalized Environment for one build.
//
// The environment writes to <outputPath>/<static dir> and serves from the static
// dir. Config entries, bundles, the debug flag and extra source paths each come
// from the WEBASSETS_* setting, else the ASSET_* setting, else a default. Every
// ASSET_* setting present logs one deprecation warning, used or not.
func Create(settings *config.Settings, outputPath string, opts Options) (*Environment, error) {
	if settings == nil {
		return nil, errors.ValidationError("settings are required").Build()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	buildID := opts.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	logger = logger.With(logfields.BuildID(buildID))

	env, err := populate(settings, outputPath, opts, logger, recorder)
	if err != nil {
		recorder.IncResolution(metrics.ResultFailed)
		return nil, err
	}
	env.buildID = buildID

	recorder.SetBundlesRegistered(env.registry.Len())
	recorder.IncResolution(metrics.ResultSuccess)
	logger.Debug("Asset environment ready",
		logfields.URL(env.url),
		logfields.Path(env.directory),
		logfields.Debug(env.debug),
		slog.Int("bundles", env.registry.Len()))
	return env, nil
}

func populate(s *config.Settings, outputPath string, opts Options, logger *slog.Logger, recorder metrics.Recorder) (*Environment, error) {
	notifier := resolve.NewLogNotifier(logger, recorder)
	env := NewEnvironment()

	staticDir := s.StaticDir()
	if err := env.Configure(filepath.Join(outputPath, staticDir), staticDir); err != nil {
		return nil, err
	}

	entries := resolve.Setting(notifier, config.ConfigKeys, s.WebassetsConfig, s.AssetConfig, nil)
	for _, entry := range entries {
		logger.Debug("Adding bundler config", logfields.ConfigKey(entry.Key), logfields.Value(entry.Value))
	}
	if err := env.ApplyConfig(entries); err != nil {
		return nil, err
	}

	bundles := resolve.Setting(notifier, config.BundleKeys, s.WebassetsBundles, s.AssetBundles, nil)
	for _, b := range bundles {
		logger.Debug("Registering bundle", logfields.Bundle(b.Name))
	}
	if err := env.RegisterBundles(bundles); err != nil {
		return nil, err
	}

	ambient, ok := opts.AmbientLevel.Get()
	if !ok {
		ambient = resolve.AmbientLevel(context.Background(), logger)
	}
	debug := resolve.Debug(notifier, s.WebassetsDebug, s.AssetDebug, ambient)
	if debug {
		logger.Debug("Bundler running in debug mode")
	}

	extra := resolve.Setting(notifier, config.SourcePathKeys, s.WebassetsSourcePaths, s.AssetSourcePaths, nil)
	theme := opts.ThemeDir
	if theme == "" {
		theme = s.Theme
	}
	loadPath := resolve.Paths(theme, s.StaticPaths(), extra)
	for _, p := range loadPath {
		logger.Debug("Using asset source path", logfields.Path(p))
	}
	if err := env.Finalize(debug, loadPath); err != nil {
		return nil, err
	}
	return env, nil
}
