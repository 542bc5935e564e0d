package standards

import (
	"context"

	"github.com/temirov/pystandards/internal/source"
)

const (
	buildAutomationFileNameConstant       = "Makefile"
	buildAutomationDescriptionConstant    = "Project SHOULD have Makefile at root level"
	buildAutomationRecommendationConstant = "Create a Makefile at the root of your project to define build and automation targets"
)

// BuildAutomationStandard requires a Makefile at the project root. The file
// content is never inspected.
type BuildAutomationStandard struct{}

// NewBuildAutomationStandard constructs the PY003 standard.
func NewBuildAutomationStandard() *BuildAutomationStandard {
	return &BuildAutomationStandard{}
}

// Definition returns the PY003 metadata.
func (standard *BuildAutomationStandard) Definition() Definition {
	return Definition{
		Code:           CodeBuildAutomationFile,
		Category:       CategoryProjectStructure,
		Description:    buildAutomationDescriptionConstant,
		Severity:       SeverityRecommendation,
		Recommendation: buildAutomationRecommendationConstant,
	}
}

// Evaluate checks for a root-level Makefile in the file listing.
func (standard *BuildAutomationStandard) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error) {
	relativePaths, listError := repositorySource.ListFiles(executionContext)
	if listError != nil {
		return Outcome{}, listError
	}

	for _, relativePath := range relativePaths {
		if relativePath == buildAutomationFileNameConstant {
			return Outcome{Passed: true, DetectedValue: detectedValuePresentConstant}, nil
		}
	}
	return Outcome{Passed: false}, nil
}
