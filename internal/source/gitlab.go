package source

import (
	"context"
)

const (
	gitlabBackendNameConstant  = "gitlab"
	defaultBranchNameConstant  = "main"
	gitlabTreeBlobTypeConstant = "blob"
)

// ProjectMetadata carries the project details resolved during connection
// verification.
type ProjectMetadata struct {
	DisplayName   string
	DefaultBranch string
}

// ProjectGateway is the minimal GitLab API surface the remote source
// depends on: a metadata probe, a recursive tree listing, and raw file reads.
type ProjectGateway interface {
	FetchProjectMetadata(executionContext context.Context) (ProjectMetadata, error)
	ListProjectTree(executionContext context.Context) ([]string, error)
	FetchRawFile(executionContext context.Context, relativePath string, reference string) (string, bool, error)
}

// GitLabRepositorySource serves project files from a hosted GitLab project
// through an authenticated gateway.
type GitLabRepositorySource struct {
	gateway           ProjectGateway
	projectIdentifier string
	defaultBranch     string
	listedFiles       []string
	listingDone       bool
	contentCache      map[string]cachedFileContent
}

// NewGitLabRepositorySource constructs a remote source for the identified
// project. The gateway must already be authenticated.
func NewGitLabRepositorySource(gateway ProjectGateway, projectIdentifier string) *GitLabRepositorySource {
	return &GitLabRepositorySource{
		gateway:           gateway,
		projectIdentifier: projectIdentifier,
		defaultBranch:     defaultBranchNameConstant,
		contentCache:      make(map[string]cachedFileContent),
	}
}

// TestConnection probes the project and returns its display name. The
// project's default branch is remembered for subsequent file reads.
func (repositorySource *GitLabRepositorySource) TestConnection(executionContext context.Context) (string, error) {
	metadata, fetchError := repositorySource.gateway.FetchProjectMetadata(executionContext)
	if fetchError != nil {
		return "", &ConnectionError{Backend: gitlabBackendNameConstant, Target: repositorySource.projectIdentifier, Cause: fetchError}
	}

	if len(metadata.DefaultBranch) > 0 {
		repositorySource.defaultBranch = metadata.DefaultBranch
	}
	return metadata.DisplayName, nil
}

// ListFiles returns the relative paths of the project's default branch. The
// listing is fetched once per instance.
func (repositorySource *GitLabRepositorySource) ListFiles(executionContext context.Context) ([]string, error) {
	if repositorySource.listingDone {
		return repositorySource.listedFiles, nil
	}

	relativePaths, listError := repositorySource.gateway.ListProjectTree(executionContext)
	if listError != nil {
		return nil, &ConnectionError{Backend: gitlabBackendNameConstant, Target: repositorySource.projectIdentifier, Cause: listError}
	}

	repositorySource.listedFiles = relativePaths
	repositorySource.listingDone = true
	return repositorySource.listedFiles, nil
}

// ReadFileContent fetches the raw file at relativePath from the default
// branch, caching hits and misses so repeated checks of the same file incur
// one network call.
func (repositorySource *GitLabRepositorySource) ReadFileContent(executionContext context.Context, relativePath string) (string, bool, error) {
	if cached, found := repositorySource.contentCache[relativePath]; found {
		return cached.content, cached.exists, nil
	}

	content, exists, fetchError := repositorySource.gateway.FetchRawFile(executionContext, relativePath, repositorySource.defaultBranch)
	if fetchError != nil {
		return "", false, fetchError
	}

	cached := cachedFileContent{content: content, exists: exists}
	repositorySource.contentCache[relativePath] = cached
	return cached.content, cached.exists, nil
}
