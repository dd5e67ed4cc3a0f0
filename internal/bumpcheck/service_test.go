package bumpcheck_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bumpgate/bumpgate/internal/bumpcheck"
	"github.com/bumpgate/bumpgate/internal/execshell"
)

const (
	testRepositoryRootConstant = "/tmp/project"
	testManifestPathConstant   = "Cargo.toml"
)

const manifestContentTemplateConstant = "[package]\nname = \"sample\"\nversion = \"%s\"\n"

type stubRepositoryReader struct {
	topLevel     string
	resolveError error

	stagedPaths []string
	listError   error

	indexContent string
	indexError   error

	headContent string
	headError   error

	indexReadCount int
	headReadCount  int
}

func (reader *stubRepositoryReader) ResolveTopLevel(context.Context, string) (string, error) {
	if reader.resolveError != nil {
		return "", reader.resolveError
	}
	return reader.topLevel, nil
}

func (reader *stubRepositoryReader) ListStagedPaths(context.Context, string) ([]string, error) {
	if reader.listError != nil {
		return nil, reader.listError
	}
	return reader.stagedPaths, nil
}

func (reader *stubRepositoryReader) ReadIndexFile(context.Context, string, string) (string, error) {
	reader.indexReadCount++
	if reader.indexError != nil {
		return "", reader.indexError
	}
	return reader.indexContent, nil
}

func (reader *stubRepositoryReader) ReadHeadFile(context.Context, string, string) (string, error) {
	reader.headReadCount++
	if reader.headError != nil {
		return "", reader.headError
	}
	return reader.headContent, nil
}

func manifestContentWithVersion(versionValue string) string {
	return fmt.Sprintf(manifestContentTemplateConstant, versionValue)
}

func newCommandFailure(exitCode int) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: exitCode},
	}
}

func newCheckService(testInstance *testing.T, reader *stubRepositoryReader) *bumpcheck.Service {
	testInstance.Helper()

	service, serviceError := bumpcheck.NewService(bumpcheck.ServiceDependencies{RepositoryReader: reader})
	require.NoError(testInstance, serviceError)
	return service
}

func defaultCheckOptions() bumpcheck.CheckOptions {
	return bumpcheck.CheckOptions{WorkingDirectory: testRepositoryRootConstant}
}

func TestNewServiceRequiresRepositoryReader(testInstance *testing.T) {
	_, serviceError := bumpcheck.NewService(bumpcheck.ServiceDependencies{})
	require.ErrorIs(testInstance, serviceError, bumpcheck.ErrRepositoryReaderNotConfigured)
}

func TestCheckVersionComparisons(testInstance *testing.T) {
	testCases := []struct {
		name            string
		stagedVersion   string
		headVersion     string
		expectViolation bool
	}{
		{name: "patch_bump_succeeds", stagedVersion: "0.1.1", headVersion: "0.1.0"},
		{name: "minor_bump_succeeds", stagedVersion: "0.2.0", headVersion: "0.1.9"},
		{name: "major_bump_succeeds", stagedVersion: "2.0.0", headVersion: "1.9.9"},
		{name: "equal_versions_fail", stagedVersion: "0.1.0", headVersion: "0.1.0", expectViolation: true},
		{name: "patch_regression_fails", stagedVersion: "1.2.0", headVersion: "1.2.3", expectViolation: true},
		{name: "suffix_only_change_fails", stagedVersion: "0.1.0-alpha", headVersion: "0.1.0", expectViolation: true},
		{name: "suffix_on_head_fails", stagedVersion: "0.1.0", headVersion: "0.1.0-alpha", expectViolation: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			reader := &stubRepositoryReader{
				topLevel:     testRepositoryRootConstant,
				stagedPaths:  []string{testManifestPathConstant},
				indexContent: manifestContentWithVersion(testCase.stagedVersion),
				headContent:  manifestContentWithVersion(testCase.headVersion),
			}

			service := newCheckService(testInstance, reader)
			result, checkError := service.Check(context.Background(), defaultCheckOptions())

			if testCase.expectViolation {
				require.Error(testInstance, checkError)
				violation := bumpcheck.PolicyViolationError{}
				require.ErrorAs(testInstance, checkError, &violation)
				require.Equal(testInstance, 1, violation.ExitCode())
				require.Equal(testInstance, testCase.stagedVersion, violation.StagedVersion)
				require.Equal(testInstance, testCase.headVersion, violation.HeadVersion)
				require.Contains(testInstance, checkError.Error(), testCase.stagedVersion)
				require.Contains(testInstance, checkError.Error(), testCase.headVersion)
				return
			}

			require.NoError(testInstance, checkError)
			require.Equal(testInstance, bumpcheck.OutcomeVersionBumped, result.Outcome)
			require.Equal(testInstance, testCase.stagedVersion, result.StagedVersion)
			require.Equal(testInstance, testCase.headVersion, result.HeadVersion)
			require.Equal(testInstance, testManifestPathConstant, result.ManifestPath)
		})
	}
}

func TestCheckFailsBeforeReadingContentWhenManifestNotStaged(testInstance *testing.T) {
	reader := &stubRepositoryReader{
		topLevel:    testRepositoryRootConstant,
		stagedPaths: []string{"src/main.rs"},
	}

	service := newCheckService(testInstance, reader)
	_, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.Error(testInstance, checkError)
	require.Contains(testInstance, checkError.Error(), testManifestPathConstant)
	require.Zero(testInstance, reader.indexReadCount)
	require.Zero(testInstance, reader.headReadCount)
}

func TestCheckReportsStagingErrorWhenIndexContentUnavailable(testInstance *testing.T) {
	reader := &stubRepositoryReader{
		topLevel:    testRepositoryRootConstant,
		stagedPaths: []string{testManifestPathConstant},
		indexError:  newCommandFailure(128),
	}

	service := newCheckService(testInstance, reader)
	_, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.Error(testInstance, checkError)
	require.Contains(testInstance, checkError.Error(), "git add")
	require.Zero(testInstance, reader.headReadCount)
}

func TestCheckSucceedsWhenHeadHasNoManifest(testInstance *testing.T) {
	// A malformed staged version string is accepted on the first commit
	// because absence of the head blob short-circuits before parsing.
	reader := &stubRepositoryReader{
		topLevel:     testRepositoryRootConstant,
		stagedPaths:  []string{testManifestPathConstant},
		indexContent: manifestContentWithVersion("not-a-version"),
		headError:    newCommandFailure(128),
	}

	service := newCheckService(testInstance, reader)
	result, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.NoError(testInstance, checkError)
	require.Equal(testInstance, bumpcheck.OutcomeInitialManifest, result.Outcome)
	require.Equal(testInstance, "not-a-version", result.StagedVersion)
	require.Equal(testInstance, 1, reader.headReadCount)
}

func TestCheckRequiresStagedVersionFieldEvenWithoutHeadManifest(testInstance *testing.T) {
	reader := &stubRepositoryReader{
		topLevel:     testRepositoryRootConstant,
		stagedPaths:  []string{testManifestPathConstant},
		indexContent: "[package]\nname = \"sample\"\n",
		headError:    newCommandFailure(128),
	}

	service := newCheckService(testInstance, reader)
	_, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.Error(testInstance, checkError)
	require.Zero(testInstance, reader.headReadCount)
}

func TestCheckFormatErrorCases(testInstance *testing.T) {
	testCases := []struct {
		name         string
		indexContent string
		headContent  string
	}{
		{
			name:         "staged_missing_section",
			indexContent: "[dependencies]\nversion = \"1.0.0\"\n",
			headContent:  manifestContentWithVersion("0.1.0"),
		},
		{
			name:         "head_missing_version_field",
			indexContent: manifestContentWithVersion("0.2.0"),
			headContent:  "[package]\nname = \"sample\"\n",
		},
		{
			name:         "staged_malformed_version",
			indexContent: manifestContentWithVersion("0.2"),
			headContent:  manifestContentWithVersion("0.1.0"),
		},
		{
			name:         "head_malformed_version",
			indexContent: manifestContentWithVersion("0.2.0"),
			headContent:  manifestContentWithVersion("one.two.three"),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			reader := &stubRepositoryReader{
				topLevel:     testRepositoryRootConstant,
				stagedPaths:  []string{testManifestPathConstant},
				indexContent: testCase.indexContent,
				headContent:  testCase.headContent,
			}

			service := newCheckService(testInstance, reader)
			_, checkError := service.Check(context.Background(), defaultCheckOptions())
			require.Error(testInstance, checkError)
		})
	}
}

func TestCheckPropagatesGitExitCodeFromRootResolution(testInstance *testing.T) {
	reader := &stubRepositoryReader{resolveError: newCommandFailure(128)}

	service := newCheckService(testInstance, reader)
	_, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.Error(testInstance, checkError)
	environmentError := bumpcheck.EnvironmentError{}
	require.ErrorAs(testInstance, checkError, &environmentError)
	require.Equal(testInstance, 128, environmentError.ExitCode())
}

func TestCheckPropagatesSpawnFailuresUnchanged(testInstance *testing.T) {
	spawnFailure := execshell.CommandExecutionError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Cause:   errors.New("executable not found"),
	}
	reader := &stubRepositoryReader{
		topLevel:    testRepositoryRootConstant,
		stagedPaths: []string{testManifestPathConstant},
		headError:   spawnFailure,
	}
	reader.indexContent = manifestContentWithVersion("0.1.1")

	service := newCheckService(testInstance, reader)
	_, checkError := service.Check(context.Background(), defaultCheckOptions())

	require.Error(testInstance, checkError)
	require.IsType(testInstance, execshell.CommandExecutionError{}, checkError)
}

func TestCheckHonorsConfiguredSectionAndField(testInstance *testing.T) {
	reader := &stubRepositoryReader{
		topLevel:     testRepositoryRootConstant,
		stagedPaths:  []string{"pyproject.toml"},
		indexContent: "[project]\nrelease = \"1.1.0\"\n",
		headContent:  "[project]\nrelease = \"1.0.0\"\n",
	}

	service := newCheckService(testInstance, reader)
	result, checkError := service.Check(context.Background(), bumpcheck.CheckOptions{
		WorkingDirectory: testRepositoryRootConstant,
		Configuration: bumpcheck.CommandConfiguration{
			ManifestPath:     "pyproject.toml",
			SectionName:      "project",
			VersionFieldName: "release",
		},
	})

	require.NoError(testInstance, checkError)
	require.Equal(testInstance, bumpcheck.OutcomeVersionBumped, result.Outcome)
	require.Equal(testInstance, "1.1.0", result.StagedVersion)
}
