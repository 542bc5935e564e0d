package standards

import (
	"context"

	"github.com/temirov/pystandards/internal/pyversion"
	"github.com/temirov/pystandards/internal/source"
)

const (
	pythonVersionDescriptionConstant    = "Python version MUST be at least 3.9"
	pythonVersionRecommendationConstant = "Update your project's Python version requirement to at least 3.9"
	minimumPythonVersionTextConstant    = "3.9"
)

// PythonVersionStandard enforces the minimum Python version requirement. It
// inspects project files in the priority order of the detection table and
// stops at the first detected specifier.
type PythonVersionStandard struct {
	minimumVersion pyversion.Version
}

// NewPythonVersionStandard constructs the standard with the fixed 3.9
// minimum.
func NewPythonVersionStandard() *PythonVersionStandard {
	minimumVersion, _ := pyversion.ParseVersion(minimumPythonVersionTextConstant)
	return &PythonVersionStandard{minimumVersion: minimumVersion}
}

// Definition returns the PY001 metadata.
func (standard *PythonVersionStandard) Definition() Definition {
	return Definition{
		Code:           CodePythonVersion,
		Category:       CategoryVersion,
		Description:    pythonVersionDescriptionConstant,
		Severity:       SeverityCritical,
		Recommendation: pythonVersionRecommendationConstant,
	}
}

// Evaluate detects the project's Python version requirement and compares it
// against the minimum. An undetected version fails with an empty detected
// value, distinct from a detected but insufficient one.
func (standard *PythonVersionStandard) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error) {
	relativePaths, listError := repositorySource.ListFiles(executionContext)
	if listError != nil {
		return Outcome{}, listError
	}

	detectedRequirement, detected, detectionError := standard.detectRequirement(executionContext, repositorySource, relativePaths)
	if detectionError != nil {
		return Outcome{}, detectionError
	}
	if !detected {
		return Outcome{Passed: false}, nil
	}

	specifier, parseError := pyversion.ParseSpecifier(detectedRequirement)
	if parseError != nil {
		return Outcome{Passed: false, DetectedValue: detectedRequirement}, nil
	}

	return Outcome{
		Passed:        specifier.SatisfiesMinimum(standard.minimumVersion),
		DetectedValue: detectedRequirement,
	}, nil
}

func (standard *PythonVersionStandard) detectRequirement(executionContext context.Context, repositorySource source.RepositorySource, relativePaths []string) (string, bool, error) {
	for _, detectionRule := range pyversion.DetectionRules() {
		for _, relativePath := range relativePaths {
			if !detectionRule.MatchesFile(relativePath) {
				continue
			}

			content, exists, readError := repositorySource.ReadFileContent(executionContext, relativePath)
			if readError != nil {
				return "", false, readError
			}
			if !exists {
				continue
			}

			if requirement, found := detectionRule.Extract(content); found {
				return requirement, true, nil
			}
		}
	}
	return "", false, nil
}
