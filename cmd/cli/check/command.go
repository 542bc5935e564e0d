package check

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pystandards/internal/inspect"
	"github.com/temirov/pystandards/internal/report"
	"github.com/temirov/pystandards/internal/source"
)

const (
	commandNameConstant             = "check"
	commandShortDescriptionConstant = "Check a Python project against the registered standards"
	commandLongDescriptionConstant  = "check evaluates a GitLab project or local directory against the registered Python engineering standards and prints a per-standard report."

	flagSourceNameConstant         = "source"
	flagSourceUsageConstant        = "Source backend to inspect (gitlab or local)."
	flagProjectIdentifierConstant  = "project-id"
	flagProjectIdentifierUsage     = "GitLab project ID or path (required when source is gitlab)."
	flagPrivateTokenNameConstant   = "token"
	flagPrivateTokenUsageConstant  = "GitLab private token (defaults to the GITLAB_TOKEN environment variable)."
	flagInstanceURLNameConstant    = "url"
	flagInstanceURLUsageConstant   = "GitLab instance URL (defaults to the GITLAB_URL environment variable)."
	flagDirectoryNameConstant      = "directory"
	flagDirectoryUsageConstant     = "Path to the local directory to inspect (required when source is local)."
	flagIncludeNameConstant        = "include"
	flagIncludeUsageConstant       = "Restrict the run to the given standard codes."
	flagExcludeNameConstant        = "exclude"
	flagExcludeUsageConstant       = "Remove the given standard codes from the run."
	flagOutputFormatNameConstant   = "format"
	flagOutputFormatUsageConstant  = "Output format (checklist or json)."
	flagDisableColorNameConstant   = "no-color"
	flagDisableColorUsageConstant  = "Disable ANSI colors in checklist output."
	defaultGitLabURLConstant       = "https://gitlab.com"
	gitlabTokenEnvironmentVariable = "GITLAB_TOKEN"
	gitlabURLEnvironmentVariable   = "GITLAB_URL"

	errorUnsupportedSourceTemplate  = "unsupported source %q: expected gitlab or local"
	errorUnsupportedFormatTemplate  = "unsupported format %q: expected checklist or json"
	errorUnknownCodesTemplate       = "unknown standard codes: %s"
	errorMissingProjectIdentifier   = "project id is required for the gitlab source"
	errorMissingPrivateToken        = "gitlab token is required: pass --token or set GITLAB_TOKEN"
	errorMissingDirectoryPath       = "directory path is required for the local source"
	unknownCodesSeparatorConstant   = ", "
	reportRenderingErrorTemplate    = "unable to render report: %w"
	connectedProjectMessageConstant = "connected to project"
	logFieldProjectNameConstant     = "project_name"
)

// SourceType selects the repository backend.
type SourceType string

// Supported source backends.
const (
	SourceTypeGitLab SourceType = "gitlab"
	SourceTypeLocal  SourceType = "local"
)

// OutputFormat selects the report rendering.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatChecklist OutputFormat = "checklist"
	OutputFormatJSON      OutputFormat = "json"
)

// CommandOptions captures the fully resolved parameters for one invocation.
type CommandOptions struct {
	Source            SourceType
	ProjectIdentifier string
	PrivateToken      string
	InstanceURL       string
	DirectoryPath     string
	IncludeCodes      []string
	ExcludeCodes      []string
	Format            OutputFormat
	DisableColor      bool
}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// RepositorySourceFactory builds the repository source for the resolved
// options. Injectable so tests can substitute stub backends.
type RepositorySourceFactory func(options CommandOptions) (source.RepositorySource, error)

// CommandBuilder assembles the check cobra command with configurable
// dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	SourceFactory         RepositorySourceFactory

	sourceFlagValue       string
	projectIdentifierFlag string
	privateTokenFlagValue string
	instanceURLFlagValue  string
	directoryFlagValue    string
	includeFlagValue      []string
	excludeFlagValue      []string
	formatFlagValue       string
	disableColorFlagValue bool
}

// Build constructs the cobra command for standards checking.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.sourceFlagValue, flagSourceNameConstant, "", flagSourceUsageConstant)
	command.Flags().StringVar(&builder.projectIdentifierFlag, flagProjectIdentifierConstant, "", flagProjectIdentifierUsage)
	command.Flags().StringVar(&builder.privateTokenFlagValue, flagPrivateTokenNameConstant, "", flagPrivateTokenUsageConstant)
	command.Flags().StringVar(&builder.instanceURLFlagValue, flagInstanceURLNameConstant, "", flagInstanceURLUsageConstant)
	command.Flags().StringVar(&builder.directoryFlagValue, flagDirectoryNameConstant, "", flagDirectoryUsageConstant)
	command.Flags().StringSliceVar(&builder.includeFlagValue, flagIncludeNameConstant, nil, flagIncludeUsageConstant)
	command.Flags().StringSliceVar(&builder.excludeFlagValue, flagExcludeNameConstant, nil, flagExcludeUsageConstant)
	command.Flags().StringVar(&builder.formatFlagValue, flagOutputFormatNameConstant, "", flagOutputFormatUsageConstant)
	command.Flags().BoolVar(&builder.disableColorFlagValue, flagDisableColorNameConstant, false, flagDisableColorUsageConstant)

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.resolveOptions(command)
	if optionsError != nil {
		return optionsError
	}

	registry := inspect.DefaultRegistry()
	if validationError := validateCodes(registry, options.IncludeCodes, options.ExcludeCodes); validationError != nil {
		return validationError
	}

	repositorySource, sourceError := builder.resolveRepositorySource(options)
	if sourceError != nil {
		return sourceError
	}

	logger := builder.resolveLogger()
	service := inspect.NewService(registry, logger)
	evaluationReport, runError := service.Run(command.Context(), repositorySource, inspect.RunOptions{
		IncludeCodes: options.IncludeCodes,
		ExcludeCodes: options.ExcludeCodes,
	})
	if runError != nil {
		return runError
	}

	logger.Info(connectedProjectMessageConstant, zap.String(logFieldProjectNameConstant, evaluationReport.ProjectName))

	renderedReport, renderError := builder.renderReport(options, evaluationReport)
	if renderError != nil {
		return fmt.Errorf(reportRenderingErrorTemplate, renderError)
	}

	if !strings.HasSuffix(renderedReport, "\n") {
		renderedReport += "\n"
	}
	fmt.Fprint(command.OutOrStdout(), renderedReport)
	return nil
}

// resolveOptions merges configuration defaults, flag overrides, and
// environment fallbacks into one options value.
func (builder *CommandBuilder) resolveOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	sourceValue := configuration.Source
	if command.Flags().Changed(flagSourceNameConstant) {
		sourceValue = builder.sourceFlagValue
	}
	formatValue := configuration.Format
	if command.Flags().Changed(flagOutputFormatNameConstant) {
		formatValue = builder.formatFlagValue
	}
	includeCodes := configuration.Include
	if command.Flags().Changed(flagIncludeNameConstant) {
		includeCodes = builder.includeFlagValue
	}
	excludeCodes := configuration.Exclude
	if command.Flags().Changed(flagExcludeNameConstant) {
		excludeCodes = builder.excludeFlagValue
	}

	instanceURL := strings.TrimSpace(builder.instanceURLFlagValue)
	if len(instanceURL) == 0 {
		instanceURL = strings.TrimSpace(os.Getenv(gitlabURLEnvironmentVariable))
	}
	if len(instanceURL) == 0 {
		instanceURL = configuration.GitLabURL
	}

	privateToken := strings.TrimSpace(builder.privateTokenFlagValue)
	if len(privateToken) == 0 {
		privateToken = strings.TrimSpace(os.Getenv(gitlabTokenEnvironmentVariable))
	}

	options := CommandOptions{
		Source:            SourceType(strings.ToLower(strings.TrimSpace(sourceValue))),
		ProjectIdentifier: strings.TrimSpace(builder.projectIdentifierFlag),
		PrivateToken:      privateToken,
		InstanceURL:       instanceURL,
		DirectoryPath:     strings.TrimSpace(builder.directoryFlagValue),
		IncludeCodes:      sanitizeCodes(includeCodes),
		ExcludeCodes:      sanitizeCodes(excludeCodes),
		Format:            OutputFormat(strings.ToLower(strings.TrimSpace(formatValue))),
		DisableColor:      builder.disableColorFlagValue,
	}

	return options, builder.validateOptions(options)
}

func (builder *CommandBuilder) validateOptions(options CommandOptions) error {
	switch options.Source {
	case SourceTypeGitLab:
		if len(options.ProjectIdentifier) == 0 {
			return errors.New(errorMissingProjectIdentifier)
		}
		if len(options.PrivateToken) == 0 {
			return errors.New(errorMissingPrivateToken)
		}
	case SourceTypeLocal:
		if len(options.DirectoryPath) == 0 {
			return errors.New(errorMissingDirectoryPath)
		}
	default:
		return fmt.Errorf(errorUnsupportedSourceTemplate, string(options.Source))
	}

	switch options.Format {
	case OutputFormatChecklist, OutputFormatJSON:
		return nil
	default:
		return fmt.Errorf(errorUnsupportedFormatTemplate, string(options.Format))
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
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

func (builder *CommandBuilder) resolveRepositorySource(options CommandOptions) (source.RepositorySource, error) {
	factory := builder.SourceFactory
	if factory == nil {
		factory = defaultRepositorySourceFactory
	}
	return factory(options)
}

func defaultRepositorySourceFactory(options CommandOptions) (source.RepositorySource, error) {
	if options.Source == SourceTypeGitLab {
		gateway, gatewayError := source.NewAPIGateway(options.InstanceURL, options.PrivateToken, options.ProjectIdentifier)
		if gatewayError != nil {
			return nil, gatewayError
		}
		return source.NewGitLabRepositorySource(gateway, options.ProjectIdentifier), nil
	}
	return source.NewLocalRepositorySource(options.DirectoryPath), nil
}

func (builder *CommandBuilder) renderReport(options CommandOptions, evaluationReport inspect.Report) (string, error) {
	if options.Format == OutputFormatJSON {
		return report.NewJSONFormatter().Format(evaluationReport)
	}
	return report.NewChecklistFormatter(!options.DisableColor).Format(evaluationReport)
}

// validateCodes rejects include/exclude entries naming codes the registry
// does not carry.
func validateCodes(registry []inspect.RegisteredStandard, includeCodes []string, excludeCodes []string) error {
	registeredCodes := inspect.RegisteredCodes(registry)

	var unknownCodes []string
	for _, candidateCode := range append(append([]string{}, includeCodes...), excludeCodes...) {
		known := false
		for _, registeredCode := range registeredCodes {
			if registeredCode == candidateCode {
				known = true
				break
			}
		}
		if !known {
			unknownCodes = append(unknownCodes, candidateCode)
		}
	}

	if len(unknownCodes) > 0 {
		return fmt.Errorf(errorUnknownCodesTemplate, strings.Join(unknownCodes, unknownCodesSeparatorConstant))
	}
	return nil
}
