package standards

import (
	"context"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/temirov/pystandards/internal/source"
)

const (
	projectSpecificationFileNameConstant       = "pyproject.toml"
	projectSpecificationDescriptionConstant    = "Project SHOULD have a pyproject.toml specification"
	projectSpecificationRecommendationConstant = "Create a pyproject.toml file to specify project metadata and dependencies"
	detectedValuePresentConstant               = "present"
	detectedValueInvalidSyntaxConstant         = "invalid syntax"
)

// ProjectSpecificationStandard requires a parseable pyproject.toml at the
// project root. A file that exists but does not parse fails the check; it is
// never a process-level error.
type ProjectSpecificationStandard struct{}

// NewProjectSpecificationStandard constructs the PY002 standard.
func NewProjectSpecificationStandard() *ProjectSpecificationStandard {
	return &ProjectSpecificationStandard{}
}

// Definition returns the PY002 metadata.
func (standard *ProjectSpecificationStandard) Definition() Definition {
	return Definition{
		Code:           CodeProjectSpecification,
		Category:       CategoryProjectStructure,
		Description:    projectSpecificationDescriptionConstant,
		Severity:       SeverityRecommendation,
		Recommendation: projectSpecificationRecommendationConstant,
	}
}

// Evaluate checks that pyproject.toml exists and parses as TOML.
func (standard *ProjectSpecificationStandard) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error) {
	content, exists, readError := repositorySource.ReadFileContent(executionContext, projectSpecificationFileNameConstant)
	if readError != nil {
		return Outcome{}, readError
	}
	if !exists {
		return Outcome{Passed: false}, nil
	}

	var parsedDocument map[string]any
	if unmarshalError := toml.Unmarshal([]byte(content), &parsedDocument); unmarshalError != nil {
		return Outcome{Passed: false, DetectedValue: detectedValueInvalidSyntaxConstant}, nil
	}

	return Outcome{Passed: true, DetectedValue: detectedValuePresentConstant}, nil
}
