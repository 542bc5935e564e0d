package inspect_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pystandards/internal/inspect"
	"github.com/temirov/pystandards/internal/source"
)

func writeProjectFiles(testInstance *testing.T, rootDirectory string, files map[string]string) {
	testInstance.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
}

func TestServiceRunAgainstLocalProjects(testInstance *testing.T) {
	testCases := []struct {
		name            string
		files           map[string]string
		expectedResults map[string]bool
	}{
		{
			name: "fully_compliant_project_passes_everything",
			files: map[string]string{
				"pyproject.toml":   "[project]\nname = \"demo\"\nrequires-python = \">=3.11\"\n",
				"Makefile":         "test:\n\tpytest\n",
				"requirements.txt": "requests==2.31.0\n",
			},
			expectedResults: map[string]bool{"PY001": true, "PY002": true, "PY003": true, "PY004": true, "PY005": true},
		},
		{
			name: "old_interpreter_and_conda_project_fails_those_standards",
			files: map[string]string{
				"pyproject.toml":  "[project]\nname = \"demo\"\nrequires-python = \">=3.6\"\n",
				"environment.yml": "name: demo\ndependencies:\n  - python=3.6\n",
				"Makefile":        "all:\n",
				"poetry.lock":     "[[package]]\n",
			},
			expectedResults: map[string]bool{"PY001": false, "PY002": true, "PY003": true, "PY004": false, "PY005": true},
		},
		{
			name:            "empty_project_fails_everything",
			files:           map[string]string{},
			expectedResults: map[string]bool{"PY001": false, "PY002": false, "PY003": false, "PY004": true, "PY005": false},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			projectDirectory := testInstance.TempDir()
			writeProjectFiles(testInstance, projectDirectory, testCase.files)

			service := inspect.NewService(inspect.DefaultRegistry(), nil)
			report, runError := service.Run(context.Background(), source.NewLocalRepositorySource(projectDirectory), inspect.RunOptions{})
			require.NoError(testInstance, runError)
			require.Len(testInstance, report.Results, len(testCase.expectedResults))

			for _, result := range report.Results {
				require.Equal(testInstance, testCase.expectedResults[result.Code], result.Passed, result.Code)
			}
		})
	}
}
