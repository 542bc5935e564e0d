package standards_test

import (
	"context"
	"sort"
)

const stubProjectNameConstant = "stub-project"

// stubRepositorySource serves standards evaluations from an in-memory file
// map.
type stubRepositorySource struct {
	files     map[string]string
	listError error
}

func newStubRepositorySource(files map[string]string) *stubRepositorySource {
	return &stubRepositorySource{files: files}
}

func (repositorySource *stubRepositorySource) ListFiles(executionContext context.Context) ([]string, error) {
	if repositorySource.listError != nil {
		return nil, repositorySource.listError
	}
	relativePaths := make([]string, 0, len(repositorySource.files))
	for relativePath := range repositorySource.files {
		relativePaths = append(relativePaths, relativePath)
	}
	sort.Strings(relativePaths)
	return relativePaths, nil
}

func (repositorySource *stubRepositorySource) ReadFileContent(executionContext context.Context, relativePath string) (string, bool, error) {
	content, found := repositorySource.files[relativePath]
	return content, found, nil
}

func (repositorySource *stubRepositorySource) TestConnection(executionContext context.Context) (string, error) {
	return stubProjectNameConstant, nil
}
