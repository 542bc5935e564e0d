package check

import "strings"

const (
	configurationSourceKeyConstant    = "source"
	configurationGitLabURLKeyConstant = "gitlab_url"
	configurationFormatKeyConstant    = "format"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures persistent settings for the check command.
type CommandConfiguration struct {
	Source    string   `mapstructure:"source"`
	GitLabURL string   `mapstructure:"gitlab_url"`
	Format    string   `mapstructure:"format"`
	Include   []string `mapstructure:"include"`
	Exclude   []string `mapstructure:"exclude"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// check command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Source:    string(SourceTypeLocal),
		GitLabURL: defaultGitLabURLConstant,
		Format:    string(OutputFormatChecklist),
	}
}

// DefaultConfigurationValues exposes the defaults keyed for the shared
// configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + configurationSourceKeyConstant:    defaults.Source,
		configurationKey + configurationKeySeparatorConstant + configurationGitLabURLKeyConstant: defaults.GitLabURL,
		configurationKey + configurationKeySeparatorConstant + configurationFormatKeyConstant:    defaults.Format,
	}
}

// sanitize trims whitespace from list-valued configuration entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Include = sanitizeCodes(configuration.Include)
	sanitized.Exclude = sanitizeCodes(configuration.Exclude)
	return sanitized
}

func sanitizeCodes(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, strings.ToUpper(trimmed))
	}
	return sanitized
}
