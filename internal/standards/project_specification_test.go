package standards_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pystandards/internal/standards"
)

func TestProjectSpecificationStandardEvaluate(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		files                 map[string]string
		expectedPassed        bool
		expectedDetectedValue string
	}{
		{
			name:                  "valid_specification_passes",
			files:                 map[string]string{"pyproject.toml": "[project]\nname = \"demo\"\n"},
			expectedPassed:        true,
			expectedDetectedValue: "present",
		},
		{
			name:                  "missing_specification_fails_without_value",
			files:                 map[string]string{"README.md": "# demo\n"},
			expectedPassed:        false,
			expectedDetectedValue: "",
		},
		{
			name:                  "malformed_specification_fails_as_check",
			files:                 map[string]string{"pyproject.toml": "[project\nname = demo\n"},
			expectedPassed:        false,
			expectedDetectedValue: "invalid syntax",
		},
	}

	standard := standards.NewProjectSpecificationStandard()
	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outcome, evaluationError := standard.Evaluate(context.Background(), newStubRepositorySource(testCase.files))
			require.NoError(testInstance, evaluationError)
			require.Equal(testInstance, testCase.expectedPassed, outcome.Passed)
			require.Equal(testInstance, testCase.expectedDetectedValue, outcome.DetectedValue)
		})
	}
}
