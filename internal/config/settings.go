package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/webassets/internal/foundation"
)

// Defaults applied to settings that were not written.
const (
	DefaultThemeStaticDir = "theme"
	DefaultThemeStatic    = "static"
	DefaultOutputPath     = "output"
	DefaultBundler        = "concat"
)

// Settings holds the host build settings consulted by the asset environment.
// YAML keys are the host's own setting names. Keys whose absence must be told
// apart from an explicit zero value are foundation.Option fields.
type Settings struct {
	Theme            string                      `yaml:"THEME,omitempty"`
	ThemeStaticDir   foundation.Option[string]   `yaml:"THEME_STATIC_DIR,omitempty"`
	ThemeStaticPaths foundation.Option[[]string] `yaml:"THEME_STATIC_PATHS,omitempty"`
	OutputPath       string                      `yaml:"OUTPUT_PATH,omitempty"`
	SiteURL          string                      `yaml:"SITEURL,omitempty"`
	RelativeURLs     bool                        `yaml:"RELATIVE_URLS,omitempty"`
	LogLevel         LogLevel                    `yaml:"LOG_LEVEL,omitempty"`
	Bundler          string                      `yaml:"WEBASSETS_BUNDLER,omitempty"`

	WebassetsConfig      foundation.Option[[]ConfigEntry] `yaml:"WEBASSETS_CONFIG,omitempty"`
	WebassetsBundles     foundation.Option[[]BundleEntry] `yaml:"WEBASSETS_BUNDLES,omitempty"`
	WebassetsDebug       foundation.Option[bool]          `yaml:"WEBASSETS_DEBUG,omitempty"`
	WebassetsSourcePaths foundation.Option[[]string]      `yaml:"WEBASSETS_SOURCE_PATHS,omitempty"`

	AssetConfig      foundation.Option[[]ConfigEntry] `yaml:"ASSET_CONFIG,omitempty"`
	AssetBundles     foundation.Option[[]BundleEntry] `yaml:"ASSET_BUNDLES,omitempty"`
	AssetDebug       foundation.Option[bool]          `yaml:"ASSET_DEBUG,omitempty"`
	AssetSourcePaths foundation.Option[[]string]      `yaml:"ASSET_SOURCE_PATHS,omitempty"`
}

// StaticDir is the theme static directory name inside the output tree.
// An explicit empty string is kept: it means "output root".
func (s *Settings) StaticDir() string {
	return s.ThemeStaticDir.UnwrapOr(DefaultThemeStaticDir)
}

// StaticPaths are the theme-relative directories holding source assets.
func (s *Settings) StaticPaths() []string {
	return s.ThemeStaticPaths.UnwrapOr([]string{DefaultThemeStatic})
}

// applyDefaults fills unset scalar settings.
func (s *Settings) applyDefaults() {
	if s.OutputPath == "" {
		s.OutputPath = DefaultOutputPath
	}
	if s.Bundler == "" {
		s.Bundler = DefaultBundler
	}
	s.LogLevel = NormalizeLogLevel(string(s.LogLevel))
}

// ResolvePaths makes a relative THEME and OUTPUT_PATH relative to base, which
// is normally the directory of the settings file.
func (s *Settings) ResolvePaths(base string) {
	if s.Theme != "" && !filepath.IsAbs(s.Theme) {
		s.Theme = filepath.Join(base, s.Theme)
	}
	if s.OutputPath != "" && !filepath.IsAbs(s.OutputPath) {
		s.OutputPath = filepath.Join(base, s.OutputPath)
	}
}
