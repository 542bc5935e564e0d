package standards_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pystandards/internal/standards"
)

func TestDependencyLockFileStandardEvaluate(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		files                 map[string]string
		expectedPassed        bool
		expectedDetectedValue string
	}{
		{name: "requirements_file_passes", files: map[string]string{"requirements.txt": "requests\n"}, expectedPassed: true, expectedDetectedValue: "requirements.txt"},
		{name: "poetry_lock_passes", files: map[string]string{"poetry.lock": "[[package]]\n"}, expectedPassed: true, expectedDetectedValue: "poetry.lock"},
		{name: "pip_tools_input_passes", files: map[string]string{"requirements.in": "requests\n"}, expectedPassed: true, expectedDetectedValue: "requirements.in"},
		{name: "no_lock_file_fails", files: map[string]string{"README.md": "# demo\n"}, expectedPassed: false, expectedDetectedValue: ""},
		{name: "nested_lock_file_does_not_count", files: map[string]string{"sub/requirements.txt": "requests\n"}, expectedPassed: false, expectedDetectedValue: ""},
	}

	standard := standards.NewDependencyLockFileStandard()
	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outcome, evaluationError := standard.Evaluate(context.Background(), newStubRepositorySource(testCase.files))
			require.NoError(testInstance, evaluationError)
			require.Equal(testInstance, testCase.expectedPassed, outcome.Passed)
			require.Equal(testInstance, testCase.expectedDetectedValue, outcome.DetectedValue)
		})
	}
}
