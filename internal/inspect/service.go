package inspect

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pystandards/internal/source"
	"github.com/temirov/pystandards/internal/standards"
)

const (
	connectionVerifiedMessageConstant = "connection verified"
	standardEvaluatedMessageConstant  = "standard evaluated"
	evaluationFailedMessageConstant   = "standard evaluation failed"
	evaluationPanicTemplateConstant   = "standard evaluation panicked: %v"
	logFieldProjectNameConstant       = "project_name"
	logFieldStandardCodeConstant      = "standard_code"
	logFieldStandardPassedConstant    = "passed"
	logFieldEvaluationFailureConstant = "failure"
	connectionErrorTemplateConstant   = "connection verification failed: %w"
	listingErrorTemplateConstant      = "file listing failed: %w"
)

// Service runs registered standards against repository sources.
type Service struct {
	registry []RegisteredStandard
	logger   *zap.Logger
}

// NewService constructs a Service over the provided registry. A nil logger
// is replaced with a no-op logger.
func NewService(registry []RegisteredStandard, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, logger: logger}
}

// Run verifies connectivity, lists the project files once, filters the
// registry by the provided options, and evaluates every surviving standard in
// registry order. A failure inside a single standard is converted into a
// failed result tagged with that standard's code and never aborts the run; a
// connection or listing failure aborts before any standard executes.
func (service *Service) Run(executionContext context.Context, repositorySource source.RepositorySource, options RunOptions) (Report, error) {
	projectName, connectionError := repositorySource.TestConnection(executionContext)
	if connectionError != nil {
		return Report{}, fmt.Errorf(connectionErrorTemplateConstant, connectionError)
	}

	if _, listError := repositorySource.ListFiles(executionContext); listError != nil {
		return Report{}, fmt.Errorf(listingErrorTemplateConstant, listError)
	}

	service.logger.Debug(connectionVerifiedMessageConstant, zap.String(logFieldProjectNameConstant, projectName))

	filteredRegistry := filterRegistry(service.registry, options)

	report := Report{
		ProjectName: projectName,
		Results:     make([]StandardResult, 0, len(filteredRegistry)),
	}
	for _, registeredStandard := range filteredRegistry {
		result := service.evaluateStandard(executionContext, registeredStandard, repositorySource)
		service.logger.Debug(
			standardEvaluatedMessageConstant,
			zap.String(logFieldStandardCodeConstant, result.Code),
			zap.Bool(logFieldStandardPassedConstant, result.Passed),
		)
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// filterRegistry applies include first and exclude second, preserving
// registry order regardless of the filter combination.
func filterRegistry(registry []RegisteredStandard, options RunOptions) []RegisteredStandard {
	filtered := make([]RegisteredStandard, 0, len(registry))
	for _, registeredStandard := range registry {
		if len(options.IncludeCodes) > 0 && !containsCode(options.IncludeCodes, registeredStandard.Definition.Code) {
			continue
		}
		if containsCode(options.ExcludeCodes, registeredStandard.Definition.Code) {
			continue
		}
		filtered = append(filtered, registeredStandard)
	}
	return filtered
}

func containsCode(codes []string, candidateCode string) bool {
	for _, code := range codes {
		if code == candidateCode {
			return true
		}
	}
	return false
}

// evaluateStandard runs one evaluator inside a recovery boundary so a
// misbehaving rule yields a failed result instead of aborting the batch.
func (service *Service) evaluateStandard(executionContext context.Context, registeredStandard RegisteredStandard, repositorySource source.RepositorySource) StandardResult {
	outcome, evaluationError := service.safeEvaluate(executionContext, registeredStandard.Evaluator, repositorySource)
	if evaluationError != nil {
		service.logger.Warn(
			evaluationFailedMessageConstant,
			zap.String(logFieldStandardCodeConstant, registeredStandard.Definition.Code),
			zap.String(logFieldEvaluationFailureConstant, evaluationError.Error()),
		)
		outcome = standards.Outcome{Passed: false}
	}

	return buildResult(registeredStandard.Definition, outcome)
}

func (service *Service) safeEvaluate(executionContext context.Context, evaluator standards.Evaluator, repositorySource source.RepositorySource) (outcome standards.Outcome, evaluationError error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			evaluationError = fmt.Errorf(evaluationPanicTemplateConstant, recovered)
		}
	}()
	return evaluator.Evaluate(executionContext, repositorySource)
}

func buildResult(definition standards.Definition, outcome standards.Outcome) StandardResult {
	result := StandardResult{
		Code:          definition.Code,
		Category:      definition.Category,
		Description:   definition.Description,
		Severity:      definition.Severity,
		Passed:        outcome.Passed,
		DetectedValue: outcome.DetectedValue,
	}
	if !outcome.Passed {
		result.Recommendation = definition.Recommendation
	}
	return result
}
