// Package resolve computes the effective asset settings of one build.
//
// Every setting that has a legacy name goes through Setting. The current name
// wins over the legacy one, and any legacy name that is present at all produces
// a deprecation notice. Debug and Paths build on it for the debug flag and the
// source search path list. Nothing here performs I/O.
package resolve
