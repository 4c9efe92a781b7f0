// Package bundler compiles registered bundles into output files.
//
// A Bundler backend receives one Job per bundle: the bundle itself plus the
// environment's search paths, configuration, output directory and debug flag.
// Backends are looked up by name in a Registry; the "concat" backend is always
// registered in the default registry.
package bundler

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/webassets/internal/assets"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// Bundler builds a single bundle.
type Bundler interface {
	// Name is the backend identifier used in WEBASSETS_BUNDLER.
	Name() string

	// Build writes the bundle output below Job.OutputDir.
	Build(ctx context.Context, job Job) (Result, error)
}

// Job is everything a backend needs to build one bundle.
type Job struct {
	Bundle    assets.Bundle
	LoadPath  []string
	Config    map[string]any
	OutputDir string
	Debug     bool
}

// Result describes a built bundle.
type Result struct {
	Bundle string
	// Output is the output path relative to the output directory, slash separated.
	Output string
	// Path is the file that was written (or left in place).
	Path    string
	Sources []string
	// Skipped is set when the existing output was already up to date.
	Skipped bool
}

// JobFor prepares the job for the named bundle of a finalized environment.
func JobFor(env *assets.Environment, name string) (Job, error) {
	if env.State() != assets.StateFinalized {
		return Job{}, errors.InternalError(fmt.Sprintf("asset environment is %s, not finalized", env.State())).Build()
	}
	b, ok := env.Bundles().Get(name)
	if !ok {
		return Job{}, errors.ValidationError(fmt.Sprintf("bundle %q is not registered", name)).
			WithContext("bundle", name).
			Build()
	}
	return Job{
		Bundle:    b,
		LoadPath:  env.LoadPath(),
		Config:    env.Config(),
		OutputDir: env.Directory(),
		Debug:     env.Debug(),
	}, nil
}
