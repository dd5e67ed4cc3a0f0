package bumpcheck

import "strings"

const (
	defaultManifestPathConstant     = "Cargo.toml"
	defaultSectionNameConstant      = "package"
	defaultVersionFieldNameConstant = "version"

	manifestPathConfigKeySuffixConstant = ".manifest_path"
	sectionNameConfigKeySuffixConstant  = ".section_name"
	versionFieldConfigKeySuffixConstant = ".version_field"
)

// CommandConfiguration stores settings for the check command.
type CommandConfiguration struct {
	ManifestPath     string `mapstructure:"manifest_path"`
	SectionName      string `mapstructure:"section_name"`
	VersionFieldName string `mapstructure:"version_field"`
}

// DefaultCommandConfiguration supplies baseline values for the check command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ManifestPath:     defaultManifestPathConstant,
		SectionName:      defaultSectionNameConstant,
		VersionFieldName: defaultVersionFieldNameConstant,
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + manifestPathConfigKeySuffixConstant: defaults.ManifestPath,
		configurationPrefix + sectionNameConfigKeySuffixConstant:  defaults.SectionName,
		configurationPrefix + versionFieldConfigKeySuffixConstant: defaults.VersionFieldName,
	}
}

// Sanitize trims configured values and substitutes defaults for empty entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()

	sanitized := configuration
	sanitized.ManifestPath = valueOrDefault(configuration.ManifestPath, defaults.ManifestPath)
	sanitized.SectionName = valueOrDefault(configuration.SectionName, defaults.SectionName)
	sanitized.VersionFieldName = valueOrDefault(configuration.VersionFieldName, defaults.VersionFieldName)
	return sanitized
}

func valueOrDefault(candidateValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(candidateValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
