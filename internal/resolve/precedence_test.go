package resolve

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
)

type recordingNotifier struct {
	pairs []config.KeyPair
}

func (r *recordingNotifier) Deprecated(pair config.KeyPair) { r.pairs = append(r.pairs, pair) }

func TestSettingPrecedence(t *testing.T) {
	some := foundation.Some[string]
	none := foundation.None[string]()

	tests := []struct {
		name       string
		current    foundation.Option[string]
		legacy     foundation.Option[string]
		want       string
		wantNotice bool
	}{
		{"current only", some("new"), none, "new", false},
		{"current wins over legacy", some("new"), some("old"), "new", true},
		{"legacy only", none, some("old"), "old", true},
		{"neither", none, none, "default", false},
		{"explicit empty current", some(""), some("old"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{}
			got := Setting(n, config.SourcePathKeys, tt.current, tt.legacy, "default")
			assert.Equal(t, tt.want, got)
			if tt.wantNotice {
				assert.Equal(t, []config.KeyPair{config.SourcePathKeys}, n.pairs)
			} else {
				assert.Empty(t, n.pairs)
			}
		})
	}
}

func TestSettingNilNotifier(t *testing.T) {
	got := Setting[int](nil, config.ConfigKeys, foundation.None[int](), foundation.Some(2), 0)
	assert.Equal(t, 2, got)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)), nil)

	Setting(n, config.BundleKeys, foundation.None[[]config.BundleEntry](), foundation.Some([]config.BundleEntry{{Name: "x"}}), nil)
	n.Deprecated(config.BundleKeys)
	got := Setting(n, config.DebugKeys, foundation.Some(true), foundation.Some(false), false)
	assert.True(t, got)
	Setting(n, config.ConfigKeys, foundation.Some([]config.ConfigEntry{{Key: "a"}}), foundation.None[[]config.ConfigEntry](), nil)

	out := buf.String()
	require.Equal(t, 2, strings.Count(out, "level=WARN"), out)
	assert.Contains(t, out, "ASSET_BUNDLES has been deprecated in favor for WEBASSETS_BUNDLES. Please update your config file.")
	assert.Contains(t, out, "legacy_key=ASSET_BUNDLES")
	assert.Contains(t, out, "current_key=WEBASSETS_BUNDLES")
	assert.Contains(t, out, "ASSET_DEBUG has been deprecated in favor for WEBASSETS_DEBUG. Please update your config file.")
	assert.NotContains(t, out, "ASSET_CONFIG")
	assert.Equal(t, []string{"ASSET_BUNDLES", "ASSET_DEBUG"}, n.Used())
}
