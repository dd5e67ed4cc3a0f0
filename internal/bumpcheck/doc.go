// Package bumpcheck implements the pre-commit version bump check: the
// manifest must be staged for commit and must declare a semantic version
// strictly greater than the version recorded at the head commit.
package bumpcheck
