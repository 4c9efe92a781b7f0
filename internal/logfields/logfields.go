package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyLegacyKey  = "legacy_key"
	KeyCurrentKey = "current_key"
	KeyConfigKey  = "config_key"
	KeyValue      = "value"
	KeyBundle     = "bundle"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyBackend    = "backend"
	KeyPlugin     = "plugin"
	KeyDebug      = "debug"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr   { return slog.String(KeyBuildID, id) }
func LegacyKey(k string) slog.Attr  { return slog.String(KeyLegacyKey, k) }
func CurrentKey(k string) slog.Attr { return slog.String(KeyCurrentKey, k) }
func ConfigKey(k string) slog.Attr  { return slog.String(KeyConfigKey, k) }
func Value(v any) slog.Attr         { return slog.Any(KeyValue, v) }
func Bundle(name string) slog.Attr  { return slog.String(KeyBundle, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr        { return slog.String(KeyURL, u) }
func Backend(name string) slog.Attr { return slog.String(KeyBackend, name) }
func Plugin(name string) slog.Attr  { return slog.String(KeyPlugin, name) }
func Debug(enabled bool) slog.Attr  { return slog.Bool(KeyDebug, enabled) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
