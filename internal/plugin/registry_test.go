package plugin

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPluginForRegistry struct {
	BasePlugin
	metadata PluginMetadata
}

func (m *mockPluginForRegistry) Metadata() PluginMetadata { return m.metadata }

func (m *mockPluginForRegistry) Execute(context.Context, *PluginContext) error { return nil }

func newMockPlugin(name, version string, pluginType PluginType) Plugin {
	return &mockPluginForRegistry{metadata: PluginMetadata{Name: name, Version: version, Type: pluginType}}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	p := newMockPlugin("webassets", "v1.0.0", PluginTypeAssets)

	require.NoError(t, r.Register(p))
	assert.True(t, r.Has("webassets"))
	assert.Error(t, r.Register(p), "duplicate registration")
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(newMockPlugin("", "v1.0.0", PluginTypeAssets)))
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockPlugin("webassets", "v1.0.0", PluginTypeAssets)))

	p, err := r.Get("webassets", "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "webassets", p.Metadata().Name)

	_, err = r.Get("webassets", "v9.9.9")
	assert.Error(t, err)
	_, err = r.Get("other", "v1.0.0")
	assert.Error(t, err)
}

func TestRegistryGetLatest(t *testing.T) {
	r := NewRegistry()
	for _, v := range []string{"v1.2.9", "v1.10.0", "v1.2.10"} {
		require.NoError(t, r.Register(newMockPlugin("webassets", v, PluginTypeAssets)))
	}

	p, err := r.GetLatest("webassets")
	require.NoError(t, err)
	assert.Equal(t, "v1.10.0", p.Metadata().Version)

	_, err = r.GetLatest("missing")
	assert.Error(t, err)
}

func TestRegistryListOrdering(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockPlugin("zeta", "v1.0.0", PluginTypeTemplate)))
	require.NoError(t, r.Register(newMockPlugin("alpha", "v2.0.0", PluginTypeAssets)))
	require.NoError(t, r.Register(newMockPlugin("alpha", "v1.0.0", PluginTypeAssets)))

	var got []string
	for _, p := range r.List() {
		got = append(got, p.Metadata().String())
	}
	assert.Equal(t, []string{"alpha@v1.0.0 (assets)", "alpha@v2.0.0 (assets)", "zeta@v1.0.0 (template)"}, got)
	assert.Len(t, r.ListByType(PluginTypeTemplate), 1)
	assert.Equal(t, 3, r.Count())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockPlugin("webassets", "v1.0.0", PluginTypeAssets)))

	require.NoError(t, r.Unregister("webassets", "v1.0.0"))
	assert.False(t, r.Has("webassets"))
	assert.Error(t, r.Unregister("webassets", "v1.0.0"))
}

func TestRegistryConcurrency(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.Register(newMockPlugin(fmt.Sprintf("p%d", i), "v1.0.0", PluginTypeTemplate))
			_ = r.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, r.Count())
}

func TestCompareVersions(t *testing.T) {
	assert.Negative(t, compareVersions("v1.2.9", "v1.2.10"))
	assert.Positive(t, compareVersions("2.0.0", "v1.9.9"))
	assert.Zero(t, compareVersions("v1.0.0", "1.0.0"))
	assert.Negative(t, compareVersions("v1.0", "v1.0.1"))
}
