package bundler

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/metrics"
)

type countingBackend struct {
	builds int
}

func (c *countingBackend) Name() string { return "counting" }

func (c *countingBackend) Build(_ context.Context, job Job) (Result, error) {
	c.builds++
	return Result{Bundle: job.Bundle.Name, Output: job.Bundle.Output()}, nil
}

type buildRecorder struct {
	metrics.NoopRecorder
	observed []string
}

func (b *buildRecorder) ObserveBundleBuild(name string, _ time.Duration, _ bool) {
	b.observed = append(b.observed, name)
}

func finalizedEnv(t *testing.T, loadPath []string, outDir string, bundles ...config.BundleEntry) *assets.Environment {
	t.Helper()
	env := assets.NewEnvironment()
	require.NoError(t, env.Configure(outDir, "theme"))
	require.NoError(t, env.ApplyConfig(nil))
	require.NoError(t, env.RegisterBundles(bundles))
	require.NoError(t, env.Finalize(false, loadPath))
	return env
}

func TestRunnerBuildsOnce(t *testing.T) {
	env := finalizedEnv(t, nil, "/out/theme",
		config.BundleEntry{Name: "main", Options: map[string]any{"output": "main.css"}})
	backend := &countingBackend{}
	rec := &buildRecorder{}
	r := NewRunner(backend, env, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Recorder = rec

	url, err := r.URL(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "theme/main.css", url)

	url, err = r.URL(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "theme/main.css", url)
	assert.Equal(t, 1, backend.builds)
	assert.Equal(t, []string{"main"}, rec.observed)

	_, err = r.URL(context.Background(), "unknown")
	require.Error(t, err)
}

func TestRunnerBuildAllWithConcat(t *testing.T) {
	f := newFixture(t)
	env := finalizedEnv(t, []string{f.static, f.extra}, f.out,
		config.BundleEntry{Name: "css", Contents: []any{"css/a.css", "css/b.css"}, Options: map[string]any{"output": "css/site.css"}},
		config.BundleEntry{Name: "js", Contents: []any{"js/app.js"}, Options: map[string]any{"output": "js/site.js"}},
	)

	r := NewRunner(NewConcat(), env, nil)
	results, err := r.BuildAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "css", results[0].Bundle)
	assert.Equal(t, "a{}\nb{}\n", readFile(t, filepath.Join(f.out, "css", "site.css")))
	assert.Equal(t, map[string]string{"css": "css/site.css", "js": "js/site.js"}, r.Manifest.All())
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	env := finalizedEnv(t, []string{f.static}, f.out,
		config.BundleEntry{Name: "broken", Contents: []any{"missing.css"}, Options: map[string]any{"output": "x.css"}},
		config.BundleEntry{Name: "fine", Contents: []any{"css/a.css"}, Options: map[string]any{"output": "y.css"}},
	)

	r := NewRunner(NewConcat(), env, slog.New(slog.NewTextHandler(io.Discard, nil)))
	results, err := r.BuildAll(context.Background())
	require.Error(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, r.Manifest.Len())
}

func TestJobForRequiresFinalizedEnvironment(t *testing.T) {
	env := assets.NewEnvironment()
	_, err := JobFor(env, "main")
	require.Error(t, err)
}
