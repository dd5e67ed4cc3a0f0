// Package gitrepo reads repository state through the git command-line
// interface: the working-tree root, the staged file set, and blob content
// from the index or a named revision.
package gitrepo
