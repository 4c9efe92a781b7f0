package resolve

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/foundation"
)

// Debug resolves the bundler debug flag: WEBASSETS_DEBUG, then ASSET_DEBUG, then
// whether the ambient log level is at or below debug.
func Debug(n Notifier, current, legacy foundation.Option[bool], ambient slog.Level) bool {
	return Setting(n, config.DebugKeys, current, legacy, ambient <= slog.LevelDebug)
}

// AmbientLevel reports the lowest standard level logger has enabled.
func AmbientLevel(ctx context.Context, logger *slog.Logger) slog.Level {
	if logger == nil {
		logger = slog.Default()
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if logger.Enabled(ctx, level) {
			return level
		}
	}
	return slog.LevelError
}
