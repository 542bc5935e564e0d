package inspect

import "github.com/temirov/pystandards/internal/standards"

// StandardResult is the outcome of evaluating one standard against one
// repository source. Instances are immutable once produced.
type StandardResult struct {
	Code           string
	Category       string
	Description    string
	Severity       standards.Severity
	Passed         bool
	DetectedValue  string
	Recommendation string
}

// Report aggregates the per-standard results of one evaluation run.
// Insertion order equals registry order and codes never repeat.
type Report struct {
	ProjectName string
	Results     []StandardResult
}

// RunOptions configures one engine run. Include restricts the registry to
// the given codes when non-empty; Exclude removes codes afterwards.
type RunOptions struct {
	IncludeCodes []string
	ExcludeCodes []string
}

// RegisteredStandard binds an evaluator to its definition inside the
// registry.
type RegisteredStandard struct {
	Definition standards.Definition
	Evaluator  standards.Evaluator
}
