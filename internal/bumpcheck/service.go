package bumpcheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bumpgate/bumpgate/internal/execshell"
	"github.com/bumpgate/bumpgate/internal/manifest"
)

const (
	repositoryReaderMissingMessageConstant    = "repository reader not configured"
	manifestOutsideRepositoryTemplateConstant = "manifest path %q is outside the repository root %q"
	currentWorkingDirectoryFallbackConstant   = "."
)

// ErrRepositoryReaderNotConfigured indicates the repository reader dependency was missing.
var ErrRepositoryReaderNotConfigured = errors.New(repositoryReaderMissingMessageConstant)

// Outcome enumerates the success variants of a completed check.
type Outcome int

const (
	// OutcomeVersionBumped reports a staged version strictly greater than the head version.
	OutcomeVersionBumped Outcome = iota
	// OutcomeInitialManifest reports that the head commit carries no manifest, so there is nothing to enforce.
	OutcomeInitialManifest
)

// CheckOptions configure a single check run.
type CheckOptions struct {
	WorkingDirectory string
	Configuration    CommandConfiguration
}

// Result captures the outcome of a successful check.
type Result struct {
	Outcome       Outcome
	ManifestPath  string
	StagedVersion string
	HeadVersion   string
}

// Service verifies that the staged manifest declares a strictly bumped version.
type Service struct {
	reader  RepositoryReader
	catalog MessageCatalog
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryReader == nil {
		return nil, ErrRepositoryReaderNotConfigured
	}
	return &Service{
		reader:  dependencies.RepositoryReader,
		catalog: dependencies.MessageCatalog.sanitize(),
	}, nil
}

// Check runs the version bump verification to completion.
//
// The order of operations is deliberate: the staged manifest must always
// yield a version string, but when the head commit has no manifest the check
// succeeds before either string is parsed.
func (service *Service) Check(executionContext context.Context, options CheckOptions) (Result, error) {
	configuration := options.Configuration.Sanitize()
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)
	if len(workingDirectory) == 0 {
		workingDirectory = currentWorkingDirectoryFallbackConstant
	}

	repositoryRoot, resolveError := service.reader.ResolveTopLevel(executionContext, workingDirectory)
	if resolveError != nil {
		return Result{}, service.wrapGitFailure(resolveError)
	}

	relativeManifestPath, relativePathError := service.relativeManifestPath(repositoryRoot, configuration.ManifestPath)
	if relativePathError != nil {
		return Result{}, relativePathError
	}

	stagedPaths, listError := service.reader.ListStagedPaths(executionContext, repositoryRoot)
	if listError != nil {
		return Result{}, service.wrapGitFailure(listError)
	}
	if !containsPath(stagedPaths, relativeManifestPath) {
		return Result{}, fmt.Errorf(service.catalog.ManifestNotStagedTemplate, relativeManifestPath)
	}

	stagedContent, stagedReadError := service.reader.ReadIndexFile(executionContext, repositoryRoot, relativeManifestPath)
	if stagedReadError != nil {
		if isCommandFailure(stagedReadError) {
			return Result{}, fmt.Errorf(service.catalog.StagedContentMissingTemplate, relativeManifestPath, relativeManifestPath)
		}
		return Result{}, stagedReadError
	}

	stagedVersionValue, stagedExtractionError := manifest.ExtractVersion(stagedContent, configuration.SectionName, configuration.VersionFieldName)
	if stagedExtractionError != nil {
		return Result{}, stagedExtractionError
	}

	headContent, headReadError := service.reader.ReadHeadFile(executionContext, repositoryRoot, relativeManifestPath)
	if headReadError != nil {
		if isCommandFailure(headReadError) {
			// No manifest at HEAD: nothing to compare against, the commit may proceed.
			return Result{Outcome: OutcomeInitialManifest, ManifestPath: relativeManifestPath, StagedVersion: stagedVersionValue}, nil
		}
		return Result{}, headReadError
	}

	headVersionValue, headExtractionError := manifest.ExtractVersion(headContent, configuration.SectionName, configuration.VersionFieldName)
	if headExtractionError != nil {
		return Result{}, headExtractionError
	}

	stagedVersion, stagedParseError := manifest.ParseSemanticVersion(stagedVersionValue)
	if stagedParseError != nil {
		return Result{}, stagedParseError
	}
	headVersion, headParseError := manifest.ParseSemanticVersion(headVersionValue)
	if headParseError != nil {
		return Result{}, headParseError
	}

	if stagedVersion.Compare(headVersion) <= 0 {
		return Result{}, PolicyViolationError{
			ManifestPath:  relativeManifestPath,
			StagedVersion: stagedVersionValue,
			HeadVersion:   headVersionValue,
			message:       fmt.Sprintf(service.catalog.VersionNotBumpedTemplate, relativeManifestPath, stagedVersionValue, headVersionValue),
		}
	}

	return Result{
		Outcome:       OutcomeVersionBumped,
		ManifestPath:  relativeManifestPath,
		StagedVersion: stagedVersionValue,
		HeadVersion:   headVersionValue,
	}, nil
}

func (service *Service) relativeManifestPath(repositoryRoot string, configuredManifestPath string) (string, error) {
	if !filepath.IsAbs(configuredManifestPath) {
		return filepath.ToSlash(filepath.Clean(configuredManifestPath)), nil
	}

	relativePath, relativeError := filepath.Rel(repositoryRoot, configuredManifestPath)
	if relativeError != nil || strings.HasPrefix(relativePath, "..") {
		return "", fmt.Errorf(manifestOutsideRepositoryTemplateConstant, configuredManifestPath, repositoryRoot)
	}
	return filepath.ToSlash(relativePath), nil
}

func (service *Service) wrapGitFailure(gitError error) error {
	commandFailure := execshell.CommandFailedError{}
	if errors.As(gitError, &commandFailure) {
		return EnvironmentError{Cause: gitError, GitExitCode: commandFailure.Result.ExitCode}
	}
	return gitError
}

func isCommandFailure(candidateError error) bool {
	commandFailure := execshell.CommandFailedError{}
	return errors.As(candidateError, &commandFailure)
}

func containsPath(stagedPaths []string, candidatePath string) bool {
	for _, stagedPath := range stagedPaths {
		if stagedPath == candidatePath {
			return true
		}
	}
	return false
}
