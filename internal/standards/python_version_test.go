package standards_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pystandards/internal/standards"
)

func TestPythonVersionStandardEvaluate(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		files                 map[string]string
		expectedPassed        bool
		expectedDetectedValue string
	}{
		{
			name: "pyproject_requirement_meets_minimum",
			files: map[string]string{
				"pyproject.toml": "[project]\nrequires-python = \">=3.10\"\n",
			},
			expectedPassed:        true,
			expectedDetectedValue: ">=3.10",
		},
		{
			name: "pyproject_requirement_below_minimum",
			files: map[string]string{
				"pyproject.toml": "[project]\nrequires-python = \">=3.6\"\n",
			},
			expectedPassed:        false,
			expectedDetectedValue: ">=3.6",
		},
		{
			name: "pyproject_wins_over_setup_script",
			files: map[string]string{
				"pyproject.toml": "[project]\nrequires-python = \">=3.11\"\n",
				"setup.py":       "setup(python_requires=\">=3.6\")\n",
			},
			expectedPassed:        true,
			expectedDetectedValue: ">=3.11",
		},
		{
			name: "setup_script_wins_over_container_definition",
			files: map[string]string{
				"setup.py":   "setup(python_requires=\">=3.6\")\n",
				"Dockerfile": "FROM python:3.12\n",
			},
			expectedPassed:        false,
			expectedDetectedValue: ">=3.6",
		},
		{
			name: "container_definition_detected",
			files: map[string]string{
				"Dockerfile": "FROM python:3.12-slim\n",
			},
			expectedPassed:        true,
			expectedDetectedValue: "3.12",
		},
		{
			name: "shell_script_detected",
			files: map[string]string{
				"scripts/run.sh": "#!/bin/sh\npython3.8 -m demo\n",
			},
			expectedPassed:        false,
			expectedDetectedValue: "3.8",
		},
		{
			name: "pyproject_without_requirement_falls_through",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"demo\"\n",
				"Dockerfile":     "FROM python:3.10\n",
			},
			expectedPassed:        true,
			expectedDetectedValue: "3.10",
		},
		{
			name:                  "nothing_detected",
			files:                 map[string]string{"README.md": "# demo\n"},
			expectedPassed:        false,
			expectedDetectedValue: "",
		},
	}

	standard := standards.NewPythonVersionStandard()
	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outcome, evaluationError := standard.Evaluate(context.Background(), newStubRepositorySource(testCase.files))
			require.NoError(testInstance, evaluationError)
			require.Equal(testInstance, testCase.expectedPassed, outcome.Passed)
			require.Equal(testInstance, testCase.expectedDetectedValue, outcome.DetectedValue)
		})
	}
}

func TestPythonVersionStandardDefinition(testInstance *testing.T) {
	definition := standards.NewPythonVersionStandard().Definition()
	require.Equal(testInstance, standards.CodePythonVersion, definition.Code)
	require.Equal(testInstance, standards.SeverityCritical, definition.Severity)
}
