// Package errors provides the classified error primitives used across webassets.
//
// A ClassifiedError carries a category (config, dependency, build, ...), a severity
// and structured context. Errors are built with the fluent ErrorBuilder:
//
//	err := errors.DependencyError("bundler backend unavailable").
//		WithContext("backend", name).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
