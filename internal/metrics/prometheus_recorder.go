package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	deprecatedSettings *prom.CounterVec
	resolutions        *prom.CounterVec
	bundlesRegistered  prom.Gauge
	bundleBuild        *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.deprecatedSettings = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "webassets",
			Name:      "deprecated_settings_total",
			Help:      "Legacy setting names used during environment resolution",
		}, []string{"legacy_key"})
		pr.resolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "webassets",
			Name:      "resolutions_total",
			Help:      "Asset environment resolutions by result",
		}, []string{"result"})
		pr.bundlesRegistered = prom.NewGauge(prom.GaugeOpts{
			Namespace: "webassets",
			Name:      "bundles_registered",
			Help:      "Bundles registered by the last resolution",
		})
		pr.bundleBuild = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "webassets",
			Name:      "bundle_build_duration_seconds",
			Help:      "Duration of bundle builds delegated to the bundler backend",
			Buckets:   prom.DefBuckets,
		}, []string{"bundle", "result"})
		reg.MustRegister(pr.deprecatedSettings, pr.resolutions, pr.bundlesRegistered, pr.bundleBuild)
	})
	return pr
}

func (p *PrometheusRecorder) IncDeprecatedSetting(legacyKey string) {
	if p == nil || p.deprecatedSettings == nil {
		return
	}
	p.deprecatedSettings.WithLabelValues(legacyKey).Inc()
}

func (p *PrometheusRecorder) IncResolution(result ResultLabel) {
	if p == nil || p.resolutions == nil {
		return
	}
	p.resolutions.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetBundlesRegistered(n int) {
	if p == nil || p.bundlesRegistered == nil {
		return
	}
	p.bundlesRegistered.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveBundleBuild(bundle string, d time.Duration, success bool) {
	if p == nil || p.bundleBuild == nil {
		return
	}
	res := string(ResultFailed)
	if success {
		res = string(ResultSuccess)
	}
	p.bundleBuild.WithLabelValues(bundle, res).Observe(d.Seconds())
}
