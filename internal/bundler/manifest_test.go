package bundler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest(t *testing.T) {
	m := NewManifest()
	m.Set("main", "gen/main.css")
	m.Set("app", "gen/app.js")

	out, ok := m.Resolve("main")
	require.True(t, ok)
	assert.Equal(t, "gen/main.css", out)
	_, ok = m.Resolve("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())

	all := m.All()
	all["other"] = "x"
	assert.Equal(t, 2, m.Len())
}

func TestManifestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	m := NewManifest()
	m.Set("main", "3f2a91c0.min.css")
	require.NoError(t, m.Save(path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.All(), loaded.All())

	_, err = LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
