package report

import (
	"encoding/json"

	"github.com/temirov/pystandards/internal/inspect"
)

const jsonIndentConstant = "  "

// jsonResultDocument is the wire shape of one standard result.
type jsonResultDocument struct {
	Standard       string  `json:"standard"`
	Category       string  `json:"category"`
	Severity       string  `json:"severity"`
	Description    string  `json:"description"`
	MeetsStandard  bool    `json:"meets_standard"`
	Value          *string `json:"value"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// JSONFormatter renders a report as an indented JSON object keyed by
// standard code, one entry per evaluated standard.
type JSONFormatter struct{}

// NewJSONFormatter constructs a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the report. An undetected value serializes as null rather
// than an empty string.
func (formatter *JSONFormatter) Format(evaluationReport inspect.Report) (string, error) {
	documents := make(map[string]jsonResultDocument, len(evaluationReport.Results))
	for _, standardResult := range evaluationReport.Results {
		document := jsonResultDocument{
			Standard:       standardResult.Code,
			Category:       standardResult.Category,
			Severity:       string(standardResult.Severity),
			Description:    standardResult.Description,
			MeetsStandard:  standardResult.Passed,
			Recommendation: standardResult.Recommendation,
		}
		if len(standardResult.DetectedValue) > 0 {
			detectedValue := standardResult.DetectedValue
			document.Value = &detectedValue
		}
		documents[standardResult.Code] = document
	}

	encoded, marshalError := json.MarshalIndent(documents, "", jsonIndentConstant)
	if marshalError != nil {
		return "", marshalError
	}
	return string(encoded), nil
}
