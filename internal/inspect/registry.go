package inspect

import "github.com/temirov/pystandards/internal/standards"

// DefaultRegistry assembles the ordered registry of shipped standards. The
// list is declarative so registry order, and therefore report order, stays
// deterministic.
func DefaultRegistry() []RegisteredStandard {
	evaluators := []standards.Evaluator{
		standards.NewPythonVersionStandard(),
		standards.NewProjectSpecificationStandard(),
		standards.NewBuildAutomationStandard(),
		standards.NewForbiddenPackageManagerStandard(),
		standards.NewDependencyLockFileStandard(),
	}

	registry := make([]RegisteredStandard, 0, len(evaluators))
	for _, evaluator := range evaluators {
		registry = append(registry, RegisteredStandard{
			Definition: evaluator.Definition(),
			Evaluator:  evaluator,
		})
	}
	return registry
}

// RegisteredCodes returns the codes of the registry in order.
func RegisteredCodes(registry []RegisteredStandard) []string {
	codes := make([]string, 0, len(registry))
	for _, registeredStandard := range registry {
		codes = append(codes, registeredStandard.Definition.Code)
	}
	return codes
}
