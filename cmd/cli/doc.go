// Package cli wires the bumpgate command hierarchy: configuration loading,
// structured logging, and the pre-commit version bump check.
package cli
