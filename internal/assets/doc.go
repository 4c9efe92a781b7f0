// Package assets builds the per-build asset environment that templates consult
// for bundle URLs.
//
// Create is the entry point: it resolves the settings through package resolve and
// walks a fresh Environment through its states:
//
//	Unconfigured -> Configuring -> Populated -> Finalized
//
// Configure sets the output directory and URL prefix, ApplyConfig copies the
// bundler configuration, RegisterBundles fills the Registry, and Finalize fixes
// the debug flag and search paths. Once finalized the environment is read-only
// and may be shared between template goroutines.
package assets
