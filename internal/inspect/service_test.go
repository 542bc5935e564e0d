package inspect_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pystandards/internal/inspect"
	"github.com/temirov/pystandards/internal/source"
	"github.com/temirov/pystandards/internal/standards"
)

type stubRepositorySource struct {
	projectName     string
	connectionError error
	listError       error
	files           map[string]string
}

func (stub *stubRepositorySource) ListFiles(executionContext context.Context) ([]string, error) {
	if stub.listError != nil {
		return nil, stub.listError
	}
	relativePaths := make([]string, 0, len(stub.files))
	for relativePath := range stub.files {
		relativePaths = append(relativePaths, relativePath)
	}
	sort.Strings(relativePaths)
	return relativePaths, nil
}

func (stub *stubRepositorySource) ReadFileContent(executionContext context.Context, relativePath string) (string, bool, error) {
	content, exists := stub.files[relativePath]
	return content, exists, nil
}

func (stub *stubRepositorySource) TestConnection(executionContext context.Context) (string, error) {
	if stub.connectionError != nil {
		return "", stub.connectionError
	}
	return stub.projectName, nil
}

type scriptedEvaluator struct {
	definition      standards.Definition
	outcome         standards.Outcome
	evaluationError error
	panicValue      any
}

func (evaluator *scriptedEvaluator) Definition() standards.Definition {
	return evaluator.definition
}

func (evaluator *scriptedEvaluator) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (standards.Outcome, error) {
	if evaluator.panicValue != nil {
		panic(evaluator.panicValue)
	}
	return evaluator.outcome, evaluator.evaluationError
}

func newScriptedRegistry(entries ...*scriptedEvaluator) []inspect.RegisteredStandard {
	registry := make([]inspect.RegisteredStandard, 0, len(entries))
	for _, entry := range entries {
		registry = append(registry, inspect.RegisteredStandard{Definition: entry.definition, Evaluator: entry})
	}
	return registry
}

func passingEvaluator(code string) *scriptedEvaluator {
	return &scriptedEvaluator{
		definition: standards.Definition{Code: code, Severity: standards.SeverityCritical},
		outcome:    standards.Outcome{Passed: true},
	}
}

func TestServiceRunFiltering(testInstance *testing.T) {
	testCases := []struct {
		name          string
		options       inspect.RunOptions
		expectedCodes []string
	}{
		{
			name:          "no_filters_runs_everything_in_order",
			options:       inspect.RunOptions{},
			expectedCodes: []string{"PY001", "PY002", "PY003"},
		},
		{
			name:          "include_restricts_and_preserves_registry_order",
			options:       inspect.RunOptions{IncludeCodes: []string{"PY003", "PY001"}},
			expectedCodes: []string{"PY001", "PY003"},
		},
		{
			name:          "exclude_removes_codes",
			options:       inspect.RunOptions{ExcludeCodes: []string{"PY002"}},
			expectedCodes: []string{"PY001", "PY003"},
		},
		{
			name:          "exclude_applies_after_include",
			options:       inspect.RunOptions{IncludeCodes: []string{"PY001", "PY002"}, ExcludeCodes: []string{"PY002"}},
			expectedCodes: []string{"PY001"},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			registry := newScriptedRegistry(passingEvaluator("PY001"), passingEvaluator("PY002"), passingEvaluator("PY003"))
			service := inspect.NewService(registry, nil)

			report, runError := service.Run(context.Background(), &stubRepositorySource{projectName: "demo"}, testCase.options)
			require.NoError(testInstance, runError)
			require.Equal(testInstance, "demo", report.ProjectName)

			resultCodes := make([]string, 0, len(report.Results))
			for _, result := range report.Results {
				resultCodes = append(resultCodes, result.Code)
			}
			require.Equal(testInstance, testCase.expectedCodes, resultCodes)
		})
	}
}

func TestServiceRunContainsEvaluatorFailures(testInstance *testing.T) {
	failingEvaluator := &scriptedEvaluator{
		definition:      standards.Definition{Code: "PY002", Severity: standards.SeverityCritical, Recommendation: "fix the project metadata"},
		evaluationError: errors.New("transient read failure"),
	}
	registry := newScriptedRegistry(passingEvaluator("PY001"), failingEvaluator, passingEvaluator("PY003"))
	service := inspect.NewService(registry, nil)

	report, runError := service.Run(context.Background(), &stubRepositorySource{projectName: "demo"}, inspect.RunOptions{})
	require.NoError(testInstance, runError)
	require.Len(testInstance, report.Results, 3)

	require.True(testInstance, report.Results[0].Passed)
	require.False(testInstance, report.Results[1].Passed)
	require.Equal(testInstance, "PY002", report.Results[1].Code)
	require.Equal(testInstance, "fix the project metadata", report.Results[1].Recommendation)
	require.True(testInstance, report.Results[2].Passed)
}

func TestServiceRunRecoversFromPanics(testInstance *testing.T) {
	panickingEvaluator := &scriptedEvaluator{
		definition: standards.Definition{Code: "PY004", Severity: standards.SeverityRecommendation},
		panicValue: "rule implementation bug",
	}
	registry := newScriptedRegistry(panickingEvaluator, passingEvaluator("PY005"))
	service := inspect.NewService(registry, nil)

	report, runError := service.Run(context.Background(), &stubRepositorySource{projectName: "demo"}, inspect.RunOptions{})
	require.NoError(testInstance, runError)
	require.Len(testInstance, report.Results, 2)
	require.False(testInstance, report.Results[0].Passed)
	require.True(testInstance, report.Results[1].Passed)
}

func TestServiceRunAbortsOnConnectionFailure(testInstance *testing.T) {
	evaluator := passingEvaluator("PY001")
	service := inspect.NewService(newScriptedRegistry(evaluator), nil)
	connectionError := &source.ConnectionError{Backend: "gitlab", Target: "group/demo", Cause: errors.New("401 Unauthorized")}

	_, runError := service.Run(context.Background(), &stubRepositorySource{connectionError: connectionError}, inspect.RunOptions{})
	require.Error(testInstance, runError)

	var typedError *source.ConnectionError
	require.ErrorAs(testInstance, runError, &typedError)
	require.Equal(testInstance, "group/demo", typedError.Target)
}

func TestServiceRunAbortsOnListingFailure(testInstance *testing.T) {
	evaluator := passingEvaluator("PY001")
	service := inspect.NewService(newScriptedRegistry(evaluator), nil)
	listError := &source.ConnectionError{Backend: "gitlab", Target: "group/demo", Cause: errors.New("403 Forbidden")}

	report, runError := service.Run(context.Background(), &stubRepositorySource{projectName: "demo", listError: listError}, inspect.RunOptions{})
	require.Error(testInstance, runError)
	require.Empty(testInstance, report.Results)

	var typedError *source.ConnectionError
	require.ErrorAs(testInstance, runError, &typedError)
	require.Equal(testInstance, "group/demo", typedError.Target)
}

func TestServiceRunIsRepeatable(testInstance *testing.T) {
	repositorySource := &stubRepositorySource{projectName: "demo", files: map[string]string{"Makefile": "all:\n"}}
	service := inspect.NewService(inspect.DefaultRegistry(), nil)

	firstReport, firstError := service.Run(context.Background(), repositorySource, inspect.RunOptions{})
	require.NoError(testInstance, firstError)
	secondReport, secondError := service.Run(context.Background(), repositorySource, inspect.RunOptions{})
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, firstReport, secondReport)
}

func TestDefaultRegistryCodes(testInstance *testing.T) {
	registeredCodes := inspect.RegisteredCodes(inspect.DefaultRegistry())
	require.Equal(testInstance, []string{"PY001", "PY002", "PY003", "PY004", "PY005"}, registeredCodes)
}
