package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bumpgate/bumpgate/internal/execshell"
	"github.com/bumpgate/bumpgate/internal/ui"
)

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--show-toplevel"}},
	}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128})
	eventLogger.CommandExecutionFailed(command, errors.New("spawn failed"))

	recordedEntries := observerLogs.All()
	require.Len(testInstance, recordedEntries, 4)
	require.Equal(testInstance, zapcore.InfoLevel, recordedEntries[0].Level)
	require.Equal(testInstance, zapcore.InfoLevel, recordedEntries[1].Level)
	require.Equal(testInstance, zapcore.WarnLevel, recordedEntries[2].Level)
	require.Equal(testInstance, zapcore.ErrorLevel, recordedEntries[3].Level)
}

func TestNewConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(testInstance, eventLogger)
	eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
}
