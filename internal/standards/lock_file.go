package standards

import (
	"context"

	"github.com/temirov/pystandards/internal/source"
)

const (
	lockFileDescriptionConstant    = "Project SHOULD have a lock file (poetry.lock, pip-tools requirements.in, requirements.txt)"
	lockFileRecommendationConstant = "Create a lock file to ensure consistent dependency versions across environments"
)

// recognizedLockFileNames lists the accepted root-level lock files.
var recognizedLockFileNames = []string{
	"requirements.txt",
	"poetry.lock",
	"requirements.in",
}

// DependencyLockFileStandard requires one of the recognized lock files at the
// project root.
type DependencyLockFileStandard struct{}

// NewDependencyLockFileStandard constructs the PY005 standard.
func NewDependencyLockFileStandard() *DependencyLockFileStandard {
	return &DependencyLockFileStandard{}
}

// Definition returns the PY005 metadata.
func (standard *DependencyLockFileStandard) Definition() Definition {
	return Definition{
		Code:           CodeDependencyLockFile,
		Category:       CategoryDependencyManagement,
		Description:    lockFileDescriptionConstant,
		Severity:       SeverityRecommendation,
		Recommendation: lockFileRecommendationConstant,
	}
}

// Evaluate checks the listing for any recognized lock file.
func (standard *DependencyLockFileStandard) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error) {
	relativePaths, listError := repositorySource.ListFiles(executionContext)
	if listError != nil {
		return Outcome{}, listError
	}

	for _, lockFileName := range recognizedLockFileNames {
		for _, relativePath := range relativePaths {
			if relativePath == lockFileName {
				return Outcome{Passed: true, DetectedValue: lockFileName}, nil
			}
		}
	}
	return Outcome{Passed: false}, nil
}
