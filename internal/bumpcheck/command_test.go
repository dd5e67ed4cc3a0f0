package bumpcheck_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bumpgate/bumpgate/internal/bumpcheck"
	"github.com/bumpgate/bumpgate/internal/execshell"
)

type scriptedGitExecutor struct {
	recorded  []execshell.CommandDetails
	responses []scriptedGitResponse
}

type scriptedGitResponse struct {
	result execshell.ExecutionResult
	err    error
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	if len(executor.responses) == 0 {
		return execshell.ExecutionResult{}, nil
	}

	next := executor.responses[0]
	executor.responses = executor.responses[1:]
	if next.err != nil {
		return execshell.ExecutionResult{}, next.err
	}
	return next.result, nil
}

func newScriptedExecutor(stagedVersion string, headVersion string) *scriptedGitExecutor {
	return &scriptedGitExecutor{responses: []scriptedGitResponse{
		{result: execshell.ExecutionResult{StandardOutput: testRepositoryRootConstant + "\n"}},
		{result: execshell.ExecutionResult{StandardOutput: testManifestPathConstant + "\n"}},
		{result: execshell.ExecutionResult{StandardOutput: manifestContentWithVersion(stagedVersion)}},
		{result: execshell.ExecutionResult{StandardOutput: manifestContentWithVersion(headVersion)}},
	}}
}

func TestCheckCommandReportsBumpedVersion(testInstance *testing.T) {
	executor := newScriptedExecutor("0.1.1", "0.1.0")
	builder := &bumpcheck.CommandBuilder{
		LoggerProvider:   func() *zap.Logger { return zap.NewNop() },
		GitExecutor:      executor,
		WorkingDirectory: testRepositoryRootConstant,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, "OK: Cargo.toml version bumped 0.1.0 -> 0.1.1\n", outputBuffer.String())

	require.Len(testInstance, executor.recorded, 4)
	require.Equal(testInstance, []string{"rev-parse", "--show-toplevel"}, executor.recorded[0].Arguments)
	require.Equal(testInstance, []string{"diff", "--cached", "--name-only", "--diff-filter=ACM"}, executor.recorded[1].Arguments)
	require.Equal(testInstance, []string{"show", ":Cargo.toml"}, executor.recorded[2].Arguments)
	require.Equal(testInstance, []string{"show", "HEAD:Cargo.toml"}, executor.recorded[3].Arguments)
}

func TestCheckCommandReturnsPolicyViolation(testInstance *testing.T) {
	executor := newScriptedExecutor("0.1.0", "0.1.0")
	builder := &bumpcheck.CommandBuilder{
		GitExecutor:      executor,
		WorkingDirectory: testRepositoryRootConstant,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.SetArgs([]string{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)

	violation := bumpcheck.PolicyViolationError{}
	require.ErrorAs(testInstance, executionError, &violation)
	require.Equal(testInstance, 1, violation.ExitCode())
}

func TestCheckCommandFlagOverridesConfiguration(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: []scriptedGitResponse{
		{result: execshell.ExecutionResult{StandardOutput: testRepositoryRootConstant + "\n"}},
		{result: execshell.ExecutionResult{StandardOutput: "pyproject.toml\n"}},
		{result: execshell.ExecutionResult{StandardOutput: "[project]\nrelease = \"2.0.0\"\n"}},
		{result: execshell.ExecutionResult{StandardOutput: "[project]\nrelease = \"1.0.0\"\n"}},
	}}
	builder := &bumpcheck.CommandBuilder{
		GitExecutor:      executor,
		WorkingDirectory: testRepositoryRootConstant,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"--manifest", "pyproject.toml", "--section", "project", "--version-field", "release"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, "OK: pyproject.toml version bumped 1.0.0 -> 2.0.0\n", outputBuffer.String())
	require.Equal(testInstance, []string{"show", ":pyproject.toml"}, executor.recorded[2].Arguments)
}

func TestCheckCommandReportsInitialManifest(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: []scriptedGitResponse{
		{result: execshell.ExecutionResult{StandardOutput: testRepositoryRootConstant + "\n"}},
		{result: execshell.ExecutionResult{StandardOutput: testManifestPathConstant + "\n"}},
		{result: execshell.ExecutionResult{StandardOutput: manifestContentWithVersion("0.1.0")}},
		{err: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}},
	}}
	builder := &bumpcheck.CommandBuilder{
		GitExecutor:      executor,
		WorkingDirectory: testRepositoryRootConstant,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, "OK: Cargo.toml has no prior version at HEAD\n", outputBuffer.String())
}
