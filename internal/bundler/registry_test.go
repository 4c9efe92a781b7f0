package bundler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

type namedBundler struct{ name string }

func (n namedBundler) Name() string                               { return n.name }
func (n namedBundler) Build(context.Context, Job) (Result, error) { return Result{}, nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(namedBundler{"sass"}))
	require.NoError(t, r.Register(namedBundler{"esbuild"}))

	assert.Error(t, r.Register(namedBundler{"sass"}))
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(namedBundler{""}))

	assert.Equal(t, []string{"esbuild", "sass"}, r.Names())
	assert.True(t, r.Has("sass"))

	b, err := r.Lookup("sass")
	require.NoError(t, err)
	assert.Equal(t, "sass", b.Name())

	require.NoError(t, r.Unregister("sass"))
	assert.Error(t, r.Unregister("sass"))
	assert.False(t, r.Has("sass"))
}

func TestLookupMissingIsDependencyError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("libsass")
	require.Error(t, err)

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryDependency, ce.Category())
	assert.Equal(t, errors.SeverityWarning, ce.Severity())
	backend, _ := ce.Context().GetString("backend")
	assert.Equal(t, "libsass", backend)
}

func TestDefaultRegistryHasConcat(t *testing.T) {
	b, err := Lookup(ConcatName)
	require.NoError(t, err)
	assert.IsType(t, &Concat{}, b)
	assert.True(t, DefaultRegistry().Has("concat"))
}
