package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

func newTestGlobal(out io.Writer) *Global {
	g := NewGlobal(out)
	g.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: g.Level}))
	return g
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	g := newTestGlobal(&out)

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("webassets"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run()
	if merr := cli.WriteMetrics(g); merr != nil && err == nil {
		err = merr
	}
	return out.String(), err
}

// newProject lays out a settings file, a theme with two stylesheets and
// returns the settings path.
func newProject(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	css := filepath.Join(dir, "theme", "static", "css")
	require.NoError(t, os.MkdirAll(css, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(css, "reset.css"), []byte("*{margin:0}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(css, "main.css"), []byte("body{}\n"), 0o644))

	path := filepath.Join(dir, "webassets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o644))
	return path
}

const baseSettings = `
THEME: theme
OUTPUT_PATH: output
WEBASSETS_CONFIG:
  - [libsass_style, compressed]
WEBASSETS_BUNDLES:
  - [main, [css/reset.css, css/main.css], {output: gen/main.css}]
`

func TestResolveCommand(t *testing.T) {
	path := newProject(t, baseSettings)
	dir := filepath.Dir(path)

	out, err := run(t, "-c", path, "resolve")
	require.NoError(t, err)

	var snap assets.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "finalized", snap.State)
	assert.Equal(t, "theme", snap.URL)
	assert.Equal(t, filepath.Join(dir, "output", "theme"), snap.Directory)
	assert.Equal(t, []string{filepath.Join(dir, "theme", "static")}, snap.LoadPath)
	assert.Equal(t, map[string]any{"libsass_style": "compressed"}, snap.Config)
	require.Len(t, snap.Bundles, 1)
	assert.Equal(t, "main", snap.Bundles[0].Name)
	assert.NotEmpty(t, snap.BuildID)
	assert.False(t, snap.Debug)
}

func TestResolveLegacyDebug(t *testing.T) {
	path := newProject(t, "THEME: theme\nASSET_DEBUG: true\n")

	out, err := run(t, "-c", path, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "debug: true")
}

func TestURLCommand(t *testing.T) {
	relative := newProject(t, "THEME: theme\nRELATIVE_URLS: true\nTHEME_STATIC_DIR: \"\"\n")
	out, err := run(t, "-c", relative, "url", "css/main.css", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "../css/main.css\n", out)

	absolute := newProject(t, "THEME: theme\nSITEURL: http://localhost\n")
	out, err = run(t, "-c", absolute, "url", "css/main.css", "js/app.js")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/theme/css/main.css\nhttp://localhost/theme/js/app.js\n", out)
}

func TestBuildCommand(t *testing.T) {
	path := newProject(t, baseSettings)
	dir := filepath.Dir(path)
	manifest := filepath.Join(dir, "manifest.yaml")
	metricsFile := filepath.Join(dir, "webassets.prom")

	out, err := run(t, "-c", path, "--metrics-file", metricsFile, "build", "--manifest", manifest)
	require.NoError(t, err)
	assert.Equal(t, "main\ttheme/gen/main.css\tbuilt\n", out)

	built, err := os.ReadFile(filepath.Join(dir, "output", "theme", "gen", "main.css"))
	require.NoError(t, err)
	assert.Equal(t, "*{margin:0}\nbody{}\n", string(built))
	assert.FileExists(t, manifest)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `webassets_resolutions_total{result="success"} 1`)
	assert.Contains(t, string(prom), "webassets_bundle_build_duration_seconds")

	out, err = run(t, "-c", path, "build")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "up to date\n"), out)
}

func TestMissingBackend(t *testing.T) {
	path := newProject(t, "THEME: theme\nWEBASSETS_BUNDLER: libsass\n")

	_, err := run(t, "-c", path, "build")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDependency))
	assert.Equal(t, 8, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestMissingBackendStillResolves(t *testing.T) {
	path := newProject(t, "THEME: theme\nSITEURL: http://localhost\nWEBASSETS_BUNDLER: libsass\n")

	out, err := run(t, "-c", path, "resolve")
	require.NoError(t, err)
	var snap assets.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "finalized", snap.State)
	assert.Equal(t, "theme", snap.URL)

	out, err = run(t, "-c", path, "url", "css/main.css")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/theme/css/main.css\n", out)
}

func TestMissingSettingsFile(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "resolve")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webassets.yaml")

	out, err := run(t, "-c", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, path)

	_, err = run(t, "-c", path, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = run(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}

func TestWatchStopsWithContext(t *testing.T) {
	path := newProject(t, baseSettings)
	g := newTestGlobal(io.Discard)
	cli := &CLI{Config: path}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	w := &WatchCmd{Debounce: 50 * time.Millisecond, Build: true}
	require.NoError(t, w.run(ctx, g, cli))
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "output", "theme", "gen", "main.css"))
}
