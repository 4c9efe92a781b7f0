package resolve

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
	"git.home.luguber.info/inful/webassets/internal/logfields"
	"git.home.luguber.info/inful/webassets/internal/metrics"
)

// Notifier receives a call each time a legacy setting name is present.
type Notifier interface {
	Deprecated(pair config.KeyPair)
}

// Setting returns the current value when present, else the legacy value, else
// fallback. A present legacy option notifies n even when the current value wins;
// its value is never merged into the current one.
func Setting[T any](n Notifier, pair config.KeyPair, current, legacy foundation.Option[T], fallback T) T {
	if legacy.IsSome() && n != nil {
		n.Deprecated(pair)
	}
	if v, ok := current.Get(); ok {
		return v
	}
	return legacy.UnwrapOr(fallback)
}

// LogNotifier logs deprecation notices at WARN, at most once per legacy key.
// Use one per resolution pass.
type LogNotifier struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	seen     map[string]struct{}
	used     []string
}

// NewLogNotifier creates a notifier. A nil logger means slog.Default(); a nil
// recorder disables metrics.
func NewLogNotifier(logger *slog.Logger, recorder metrics.Recorder) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &LogNotifier{logger: logger, recorder: recorder, seen: map[string]struct{}{}}
}

func (n *LogNotifier) Deprecated(pair config.KeyPair) {
	if _, dup := n.seen[pair.Legacy]; dup {
		return
	}
	n.seen[pair.Legacy] = struct{}{}
	n.used = append(n.used, pair.Legacy)
	n.recorder.IncDeprecatedSetting(pair.Legacy)
	n.logger.LogAttrs(context.Background(), slog.LevelWarn, pair.DeprecationMessage(),
		logfields.LegacyKey(pair.Legacy), logfields.CurrentKey(pair.Current))
}

// Used lists the legacy keys reported so far, in order.
func (n *LogNotifier) Used() []string {
	out := make([]string, len(n.used))
	copy(out, n.used)
	return out
}
