package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultDisabled ResultLabel = "disabled"
	ResultFailed   ResultLabel = "failed"
)

// Recorder defines observability hooks for environment resolution and bundle builds.
type Recorder interface {
	// IncDeprecatedSetting counts one use of a legacy setting name.
	IncDeprecatedSetting(legacyKey string)
	IncResolution(result ResultLabel)
	SetBundlesRegistered(n int)
	ObserveBundleBuild(bundle string, d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDeprecatedSetting(string)                    {}
func (NoopRecorder) IncResolution(ResultLabel)                      {}
func (NoopRecorder) SetBundlesRegistered(int)                       {}
func (NoopRecorder) ObserveBundleBuild(string, time.Duration, bool) {}
