// Package engine is a reference host for odylint adapters.
//
// It takes a set of files, picks the adapters whose selectors match each file's scope, runs the
// external linters concurrently and returns the diagnostics parsed from their output.
package engine
