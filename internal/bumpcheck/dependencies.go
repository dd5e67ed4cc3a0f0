package bumpcheck

import "context"

// RepositoryReader exposes the repository queries the check relies on.
type RepositoryReader interface {
	// ResolveTopLevel returns the working-tree root containing workingDirectory.
	ResolveTopLevel(executionContext context.Context, workingDirectory string) (string, error)
	// ListStagedPaths returns the repository-relative paths staged as added, copied, or modified.
	ListStagedPaths(executionContext context.Context, repositoryPath string) ([]string, error)
	// ReadIndexFile returns the staged content of the repository-relative path.
	ReadIndexFile(executionContext context.Context, repositoryPath string, relativePath string) (string, error)
	// ReadHeadFile returns the head-commit content of the repository-relative path.
	ReadHeadFile(executionContext context.Context, repositoryPath string, relativePath string) (string, error)
}

// ServiceDependencies enumerates collaborators required by the check service.
type ServiceDependencies struct {
	RepositoryReader RepositoryReader
	MessageCatalog   MessageCatalog
}
