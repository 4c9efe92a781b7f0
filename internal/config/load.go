package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webassets/internal/foundation"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
	"git.home.luguber.info/inful/webassets/internal/logfields"
)

// envFiles are loaded, when present, before settings are expanded.
var envFiles = []string{".env", ".env.local"}

// Load reads a settings file, expanding ${VAR} references against the process
// environment after .env files have been loaded.
func Load(path string) (*Settings, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("settings file not found").
				WithContext("path", path).
				WithCause(err).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "read settings file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	s, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes settings from YAML and applies defaults. Unknown keys are
// ignored since host settings files carry far more than asset settings.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode settings").Fatal().Build()
	}
	s.applyDefaults()
	return &s, nil
}

// loadEnvFiles loads every existing env file. Variables already set in the
// process environment win.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
	}
}

// ExampleSettings returns the settings written by Init.
func ExampleSettings() *Settings {
	return &Settings{
		Theme:            "themes/simple",
		ThemeStaticDir:   foundation.Some(DefaultThemeStaticDir),
		ThemeStaticPaths: foundation.Some([]string{DefaultThemeStatic}),
		OutputPath:       DefaultOutputPath,
		SiteURL:          "https://example.com",
		RelativeURLs:     true,
		LogLevel:         LogLevelInfo,
		Bundler:          DefaultBundler,
		WebassetsConfig: foundation.Some([]ConfigEntry{
			{Key: "style", Value: "compressed"},
		}),
		WebassetsBundles: foundation.Some([]BundleEntry{
			{Name: "main_css", Contents: []any{"css/reset.css", "css/main.css"}, Options: map[string]any{"output": "main.css"}},
			{Name: "main_js", Contents: []any{"js/app.js"}, Options: map[string]any{"output": "app.js"}},
		}),
		WebassetsSourcePaths: foundation.Some([]string{"assets"}),
	}
}

// Init writes an example settings file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("settings file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(ExampleSettings())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode example settings").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write settings file").
			WithContext("path", path).
			Build()
	}
	return nil
}
