package bumpcheck

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bumpgate/bumpgate/internal/execshell"
	"github.com/bumpgate/bumpgate/internal/gitrepo"
	"github.com/bumpgate/bumpgate/internal/ui"
)

const (
	commandUseNameConstant          = "check"
	commandShortDescriptionConstant = "Verify the staged manifest declares a bumped version"
	commandLongDescriptionConstant  = "check resolves the repository root, confirms the manifest is staged for commit, and fails unless the staged semantic version strictly exceeds the version recorded at HEAD. Intended to run as a pre-commit hook."
	commandExampleConstant          = "bumpgate check --manifest Cargo.toml"

	manifestFlagNameConstant      = "manifest"
	manifestFlagUsageConstant     = "Manifest path relative to the repository root."
	sectionFlagNameConstant       = "section"
	sectionFlagUsageConstant      = "Bracketed section containing the version field."
	versionFieldFlagNameConstant  = "version-field"
	versionFieldFlagUsageConstant = "Field holding the quoted semantic version."

	versionBumpedMessageTemplateConstant   = "OK: %s version bumped %s -> %s\n"
	initialManifestMessageTemplateConstant = "OK: %s has no prior version at HEAD\n"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the check command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	WorkingDirectory             string

	manifestFlagValue     string
	sectionFlagValue      string
	versionFieldFlagValue string
}

// Build constructs the check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseNameConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.Run,
	}

	command.Flags().StringVar(&builder.manifestFlagValue, manifestFlagNameConstant, "", manifestFlagUsageConstant)
	command.Flags().StringVar(&builder.sectionFlagValue, sectionFlagNameConstant, "", sectionFlagUsageConstant)
	command.Flags().StringVar(&builder.versionFieldFlagValue, versionFieldFlagNameConstant, "", versionFieldFlagUsageConstant)

	return command, nil
}

// Run executes the check using the builder's configuration and dependencies.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	if flagValue := strings.TrimSpace(builder.manifestFlagValue); len(flagValue) > 0 {
		configuration.ManifestPath = flagValue
	}
	if flagValue := strings.TrimSpace(builder.sectionFlagValue); len(flagValue) > 0 {
		configuration.SectionName = flagValue
	}
	if flagValue := strings.TrimSpace(builder.versionFieldFlagValue); len(flagValue) > 0 {
		configuration.VersionFieldName = flagValue
	}

	logger := builder.resolveLogger()

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryReader, readerError := gitrepo.NewRepositoryReader(gitExecutor)
	if readerError != nil {
		return readerError
	}

	service, serviceError := NewService(ServiceDependencies{RepositoryReader: repositoryReader})
	if serviceError != nil {
		return serviceError
	}

	result, checkError := service.Check(command.Context(), CheckOptions{
		WorkingDirectory: builder.resolveWorkingDirectory(),
		Configuration:    configuration,
	})
	if checkError != nil {
		return checkError
	}

	switch result.Outcome {
	case OutcomeInitialManifest:
		fmt.Fprintf(command.OutOrStdout(), initialManifestMessageTemplateConstant, result.ManifestPath)
	default:
		fmt.Fprintf(command.OutOrStdout(), versionBumpedMessageTemplateConstant, result.ManifestPath, result.HeadVersion, result.StagedVersion)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}

	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor.UseEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveWorkingDirectory() string {
	if len(strings.TrimSpace(builder.WorkingDirectory)) > 0 {
		return builder.WorkingDirectory
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return ""
}
