// Package metrics records asset environment and bundle build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks:
//
//	recorder := metrics.Recorder(metrics.NoopRecorder{})
//	if metricsFile != "" {
//	    reg := prometheus.NewRegistry()
//	    recorder = metrics.NewPrometheusRecorder(reg)
//	    defer metrics.WriteTextfile(metricsFile, reg)
//	}
//
// The CLI has no long-running HTTP server, so Prometheus metrics are exported in
// the node_exporter textfile format instead of being scraped.
package metrics
