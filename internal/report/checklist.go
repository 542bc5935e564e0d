package report

import (
	"fmt"
	"strings"

	"github.com/temirov/pystandards/internal/inspect"
	"github.com/temirov/pystandards/internal/standards"
)

const (
	passMarkConstant    = "✓"
	failMarkConstant    = "✗"
	warningMarkConstant = "⚠"
	greenColorConstant  = "\033[92m"
	redColorConstant    = "\033[91m"
	orangeColorConstant = "\033[33m"
	resetColorConstant  = "\033[0m"

	checklistLineTemplateConstant       = "[%s%s%s] [%s] %s\n"
	checklistPlainLineTemplateConstant  = "[%s] [%s] %s\n"
	checklistGotTemplateConstant        = "    - Got: %s\n"
	checklistSuggestionTemplateConstant = "    - Suggestion: %s\n"
	notFoundValueConstant               = "not found"
)

// ChecklistFormatter renders a report as a human-readable checklist. Passing
// standards get a green check mark; failing standards get a red cross when
// critical and an orange warning otherwise.
type ChecklistFormatter struct {
	colorized bool
}

// NewChecklistFormatter constructs a checklist formatter. Color codes are
// emitted only when colorized is true.
func NewChecklistFormatter(colorized bool) *ChecklistFormatter {
	return &ChecklistFormatter{colorized: colorized}
}

// Format renders every result on its own line, appending the detected value
// and remediation suggestion under failed entries.
func (formatter *ChecklistFormatter) Format(evaluationReport inspect.Report) (string, error) {
	var renderedOutput strings.Builder
	for _, standardResult := range evaluationReport.Results {
		marker, color := checklistMarker(standardResult)
		if formatter.colorized {
			fmt.Fprintf(&renderedOutput, checklistLineTemplateConstant, color, marker, resetColorConstant, standardResult.Code, standardResult.Description)
		} else {
			fmt.Fprintf(&renderedOutput, checklistPlainLineTemplateConstant, marker, standardResult.Code, standardResult.Description)
		}

		if standardResult.Passed {
			continue
		}

		detectedValue := standardResult.DetectedValue
		if len(detectedValue) == 0 {
			detectedValue = notFoundValueConstant
		}
		fmt.Fprintf(&renderedOutput, checklistGotTemplateConstant, detectedValue)
		fmt.Fprintf(&renderedOutput, checklistSuggestionTemplateConstant, standardResult.Recommendation)
	}
	return renderedOutput.String(), nil
}

func checklistMarker(standardResult inspect.StandardResult) (string, string) {
	if standardResult.Passed {
		return passMarkConstant, greenColorConstant
	}
	if standardResult.Severity == standards.SeverityCritical {
		return failMarkConstant, redColorConstant
	}
	return warningMarkConstant, orangeColorConstant
}
