package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/metrics"
	"git.home.luguber.info/inful/webassets/internal/plugin"
	"git.home.luguber.info/inful/webassets/internal/plugin/webassets"
)

// Global is shared by every command.
type Global struct {
	Logger   *slog.Logger
	Level    *slog.LevelVar
	Out      io.Writer
	Metrics  *prom.Registry
	Recorder metrics.Recorder
}

// NewGlobal prepares shared state writing command output to out and logs to
// stderr.
func NewGlobal(out io.Writer) *Global {
	reg := prom.NewRegistry()
	level := new(slog.LevelVar)
	return &Global{
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		Level:    level,
		Out:      out,
		Metrics:  reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Settings file path" default:"webassets.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	Output      string           `short:"o" help:"Override OUTPUT_PATH"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`

	Resolve ResolveCmd `cmd:"" help:"Print the resolved asset environment as YAML"`
	URL     URLCmd     `cmd:"" name:"url" help:"Print asset URLs for paths below the static directory"`
	Build   BuildCmd   `cmd:"" help:"Build every registered bundle"`
	Init    InitCmd    `cmd:"" help:"Write an example settings file"`
	Watch   WatchCmd   `cmd:"" help:"Re-resolve the environment whenever the settings file changes"`
}

// AfterApply runs after flag parsing; it sets up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if c.Verbose {
		g.Level.Set(slog.LevelDebug)
	}
	slog.SetDefault(g.Logger)
	return nil
}

// WriteMetrics exports the metrics gathered so far when --metrics-file is set.
func (c *CLI) WriteMetrics(g *Global) error {
	if c.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(c.MetricsFile, g.Metrics); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write metrics file").
			WithContext("path", c.MetricsFile).
			Build()
	}
	return nil
}

// loadSettings reads the settings file and applies its LOG_LEVEL unless -v was
// given. Relative paths in the file are taken from the file's directory.
func (c *CLI) loadSettings(g *Global) (*config.Settings, error) {
	s, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(c.Config)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve settings path").Build()
	}
	s.ResolvePaths(filepath.Dir(abs))
	if c.Output != "" {
		s.OutputPath = c.Output
	}
	if !c.Verbose {
		g.Level.Set(s.LogLevel.SlogLevel())
	}
	return s, nil
}

// session is one build's worth of plugin state.
type session struct {
	settings *config.Settings
	env      *assets.Environment
	plugin   *webassets.Plugin
	ctx      *plugin.PluginContext
	registry *plugin.Registry
}

// open loads settings and runs the webassets plugin through the host
// lifecycle. With bundling set, a missing bundler backend is a dependency
// error; otherwise the environment is resolved without the plugin.
func (c *CLI) open(ctx context.Context, g *Global, bundling bool) (*session, error) {
	s, err := c.loadSettings(g)
	if err != nil {
		return nil, err
	}

	wa := webassets.New(webassets.Options{
		Backend:  s.Bundler,
		Recorder: g.Recorder,
		Logger:   g.Logger,
	})
	reg := plugin.NewRegistry()
	if err := reg.Register(wa); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "register webassets plugin").Build()
	}

	pc := plugin.NewPluginContext(ctx, g.Logger, s, s.OutputPath, uuid.NewString())
	if err := plugin.InitAll(reg, pc); err != nil {
		return nil, err
	}
	sess := &session{settings: s, plugin: wa, ctx: pc, registry: reg}
	if !wa.Enabled() {
		if bundling {
			return nil, errors.DependencyError("asset environment disabled: bundler backend unavailable").
				WithContext("backend", s.Bundler).
				Build()
		}
		pc.Logger.Warn("Resolving without asset bundling", logfields.Backend(s.Bundler))
		env, err := assets.Create(s, pc.OutputDir, assets.Options{
			Logger:       pc.Logger,
			Recorder:     g.Recorder,
			AmbientLevel: foundation.Some(pc.AmbientLevel),
			BuildID:      pc.BuildID,
			ThemeDir:     pc.ThemeDir,
		})
		if err != nil {
			return nil, err
		}
		sess.env = env
		return sess, nil
	}
	if err := plugin.ExecuteAll(reg, pc); err != nil {
		return nil, err
	}
	env, ok := pc.GetValue(webassets.EnvironmentKey).(*assets.Environment)
	if !ok {
		return nil, errors.InternalError("webassets plugin did not publish an environment").Build()
	}
	sess.env = env
	pc.Logger.Debug("Asset environment resolved", logfields.URL(env.URL()))
	return sess, nil
}
