package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOption(t *testing.T) {
	t.Run("Some option", func(t *testing.T) {
		option := Some("value")
		assert.True(t, option.IsSome())
		assert.False(t, option.IsNone())
		v, ok := option.Get()
		assert.True(t, ok)
		assert.Equal(t, "value", v)
		assert.Equal(t, "value", option.UnwrapOr("fallback"))
		assert.Equal(t, "Some(value)", option.String())
	})

	t.Run("None option", func(t *testing.T) {
		option := None[string]()
		assert.True(t, option.IsNone())
		assert.Equal(t, "fallback", option.UnwrapOr("fallback"))
		assert.Equal(t, "None", option.String())
	})

	t.Run("Zero value present", func(t *testing.T) {
		option := Some("")
		assert.True(t, option.IsSome())
		assert.Equal(t, "", option.UnwrapOr("fallback"))
	})

	t.Run("FromPointer", func(t *testing.T) {
		flag := false
		assert.True(t, FromPointer(&flag).IsSome())
		assert.True(t, FromPointer[bool](nil).IsNone())
	})
}

func TestOptionYAML(t *testing.T) {
	type doc struct {
		Dir   Option[string]   `yaml:"dir"`
		Debug Option[bool]     `yaml:"debug"`
		Paths Option[[]string] `yaml:"paths"`
		Null  Option[string]   `yaml:"null"`
	}

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("dir: \"\"\ndebug: false\nnull: ~\n"), &d))

	dir, ok := d.Dir.Get()
	require.True(t, ok, "explicit empty string must be present")
	assert.Equal(t, "", dir)
	assert.True(t, d.Debug.IsSome())
	assert.False(t, d.Debug.UnwrapOr(true))
	assert.True(t, d.Paths.IsNone())
	assert.True(t, d.Null.IsNone())

	out, err := yaml.Marshal(struct {
		Set   Option[int] `yaml:"set,omitempty"`
		Unset Option[int] `yaml:"unset,omitempty"`
	}{Set: Some(3)})
	require.NoError(t, err)
	assert.Equal(t, "set: 3\n", string(out))
}
