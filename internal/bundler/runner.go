package bundler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/metrics"
)

// Runner builds the bundles of one environment with one backend and remembers
// the outputs. A bundle is built at most once per Runner.
type Runner struct {
	Backend  Bundler
	Env      *assets.Environment
	Manifest *Manifest
	Recorder metrics.Recorder
	Logger   *slog.Logger

	mu sync.Mutex
}

// NewRunner wires a runner with a fresh manifest and no-op metrics.
func NewRunner(backend Bundler, env *assets.Environment, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		Backend:  backend,
		Env:      env,
		Manifest: NewManifest(),
		Recorder: metrics.NoopRecorder{},
		Logger:   logger,
	}
}

// URL builds the bundle if needed and returns its URL from the environment.
func (r *Runner) URL(ctx context.Context, name string) (string, error) {
	out, err := r.Output(ctx, name)
	if err != nil {
		return "", err
	}
	return r.Env.URLFor(out), nil
}

// Output builds the bundle if needed and returns its output path.
func (r *Runner) Output(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.Manifest.Resolve(name); ok {
		return out, nil
	}
	res, err := r.build(ctx, name)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// BuildAll builds every registered bundle in registration order and stops at
// the first failure.
func (r *Runner) BuildAll(ctx context.Context) ([]Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.Env.Bundles().Names()
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := r.build(ctx, name)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) build(ctx context.Context, name string) (Result, error) {
	job, err := JobFor(r.Env, name)
	if err != nil {
		return Result{}, err
	}

	recorder := r.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	start := time.Now()
	res, err := r.Backend.Build(ctx, job)
	recorder.ObserveBundleBuild(name, time.Since(start), err == nil)
	if err != nil {
		r.Logger.Error("Bundle build failed",
			logfields.Bundle(name), logfields.Backend(r.Backend.Name()), logfields.Error(err))
		return Result{}, err
	}

	r.Manifest.Set(name, res.Output)
	r.Logger.Debug("Bundle built",
		logfields.Bundle(name),
		logfields.Path(res.Path),
		slog.Bool("skipped", res.Skipped),
		slog.Int("sources", len(res.Sources)))
	return res, nil
}
