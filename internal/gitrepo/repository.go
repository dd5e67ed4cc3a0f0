package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bumpgate/bumpgate/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant            = "git executor not configured"
	gitRevParseSubcommandConstant                = "rev-parse"
	gitShowToplevelFlagConstant                  = "--show-toplevel"
	gitDiffSubcommandConstant                    = "diff"
	gitDiffCachedFlagConstant                    = "--cached"
	gitDiffNameOnlyFlagConstant                  = "--name-only"
	gitDiffFilterAddedCopiedModifiedFlagConstant = "--diff-filter=ACM"
	gitShowSubcommandConstant                    = "show"
	indexBlobReferenceTemplateConstant           = ":%s"
	headBlobReferenceTemplateConstant            = "HEAD:%s"
	stagedPathsLineSeparatorConstant             = "\n"
)

// ErrGitExecutorNotConfigured indicates the repository reader was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository readers.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryReader answers queries about the repository surrounding a working directory.
type RepositoryReader struct {
	executor GitExecutor
}

// NewRepositoryReader validates the executor dependency and constructs a RepositoryReader.
func NewRepositoryReader(executor GitExecutor) (*RepositoryReader, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryReader{executor: executor}, nil
}

// ResolveTopLevel returns the absolute path of the working-tree root containing workingDirectory.
func (reader *RepositoryReader) ResolveTopLevel(executionContext context.Context, workingDirectory string) (string, error) {
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowToplevelFlagConstant},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ListStagedPaths returns the repository-relative paths staged as added, copied, or modified.
func (reader *RepositoryReader) ListStagedPaths(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitDiffCachedFlagConstant, gitDiffNameOnlyFlagConstant, gitDiffFilterAddedCopiedModifiedFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	stagedPaths := []string{}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, stagedPathsLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		stagedPaths = append(stagedPaths, trimmedLine)
	}
	return stagedPaths, nil
}

// ReadIndexFile returns the staged (index) content of the repository-relative path.
func (reader *RepositoryReader) ReadIndexFile(executionContext context.Context, repositoryPath string, relativePath string) (string, error) {
	return reader.readBlob(executionContext, repositoryPath, indexBlobReferenceTemplateConstant, relativePath)
}

// ReadHeadFile returns the content of the repository-relative path as recorded at the head commit.
func (reader *RepositoryReader) ReadHeadFile(executionContext context.Context, repositoryPath string, relativePath string) (string, error) {
	return reader.readBlob(executionContext, repositoryPath, headBlobReferenceTemplateConstant, relativePath)
}

func (reader *RepositoryReader) readBlob(executionContext context.Context, repositoryPath string, referenceTemplate string, relativePath string) (string, error) {
	blobReference := fmt.Sprintf(referenceTemplate, relativePath)
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitShowSubcommandConstant, blobReference},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}
