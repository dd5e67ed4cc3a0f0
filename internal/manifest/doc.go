// Package manifest extracts a declared semantic version from a manifest
// snapshot with bracketed section headers and compares versions under the
// bump policy: the (major, minor, patch) triple orders lexicographically and
// any pre-release or build suffix is ignored.
package manifest
