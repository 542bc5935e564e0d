package standards

import (
	"context"

	"github.com/temirov/pystandards/internal/source"
)

// Severity classifies how strongly a standard is enforced.
type Severity string

// Supported severities.
const (
	SeverityCritical       Severity = "CRITICAL"
	SeverityRecommendation Severity = "RECOMMENDATION"
)

// Standard codes registered with the engine. The codes are stable
// identifiers and part of the output contract.
const (
	CodePythonVersion           = "PY001"
	CodeProjectSpecification    = "PY002"
	CodeBuildAutomationFile     = "PY003"
	CodeForbiddenPackageManager = "PY004"
	CodeDependencyLockFile      = "PY005"
)

// Standard categories.
const (
	CategoryVersion              = "Version"
	CategoryProjectStructure     = "Project Structure"
	CategoryDependencyManagement = "Dependency Management"
)

// Definition captures the immutable metadata of one standard. Instances are
// created at registration time and never mutated.
type Definition struct {
	Code           string
	Category       string
	Description    string
	Severity       Severity
	Recommendation string
}

// Outcome is the raw verdict of one evaluation: whether the standard was met
// and what value was detected, if any.
type Outcome struct {
	Passed        bool
	DetectedValue string
}

// Evaluator is the contract every standard implements. Evaluate must treat a
// missing file as a normal branch, never an error.
type Evaluator interface {
	Definition() Definition
	Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error)
}
