// Package errors provides the classified error type used across cargo-leptos.
//
// Every fatal failure that leaves the orchestration core carries a category
// (resolution, config, io, build, ...) and a severity. The CLI adapter maps
// categories to process exit codes and decides how much of the chain to show.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryConfig, "invalid manifest path").
//		WithContext("manifest_path", raw).
//		Build()
package errors
