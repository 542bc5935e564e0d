package source

import (
	"context"
	"fmt"
	"net/http"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	gitlabClientCreationErrorTemplateConstant = "unable to create gitlab client: %w"
	treeListingPageSizeConstant               = 100
)

// APIGateway implements ProjectGateway against the GitLab REST API using the
// official client.
type APIGateway struct {
	client            *gitlab.Client
	projectIdentifier string
}

// NewAPIGateway builds an authenticated gateway for the identified project.
func NewAPIGateway(instanceURL string, privateToken string, projectIdentifier string) (*APIGateway, error) {
	client, clientError := gitlab.NewClient(privateToken, gitlab.WithBaseURL(instanceURL))
	if clientError != nil {
		return nil, fmt.Errorf(gitlabClientCreationErrorTemplateConstant, clientError)
	}

	return &APIGateway{client: client, projectIdentifier: projectIdentifier}, nil
}

// FetchProjectMetadata resolves the project and returns its name and default
// branch.
func (gateway *APIGateway) FetchProjectMetadata(executionContext context.Context) (ProjectMetadata, error) {
	project, _, fetchError := gateway.client.Projects.GetProject(gateway.projectIdentifier, nil, gitlab.WithContext(executionContext))
	if fetchError != nil {
		return ProjectMetadata{}, fetchError
	}

	return ProjectMetadata{DisplayName: project.Name, DefaultBranch: project.DefaultBranch}, nil
}

// ListProjectTree pages through the repository tree of the default branch and
// returns the relative paths of every blob.
func (gateway *APIGateway) ListProjectTree(executionContext context.Context) ([]string, error) {
	listOptions := &gitlab.ListTreeOptions{
		Recursive:   gitlab.Ptr(true),
		ListOptions: gitlab.ListOptions{PerPage: treeListingPageSizeConstant},
	}

	var relativePaths []string
	for {
		treeNodes, response, listError := gateway.client.Repositories.ListTree(gateway.projectIdentifier, listOptions, gitlab.WithContext(executionContext))
		if listError != nil {
			return nil, listError
		}

		for _, treeNode := range treeNodes {
			if treeNode.Type != gitlabTreeBlobTypeConstant {
				continue
			}
			relativePaths = append(relativePaths, treeNode.Path)
		}

		if response == nil || response.NextPage == 0 {
			break
		}
		listOptions.Page = response.NextPage
	}

	return relativePaths, nil
}

// FetchRawFile reads the raw file content at relativePath on the given
// reference. A 404 response reports absence rather than an error.
func (gateway *APIGateway) FetchRawFile(executionContext context.Context, relativePath string, reference string) (string, bool, error) {
	rawOptions := &gitlab.GetRawFileOptions{Ref: gitlab.Ptr(reference)}
	contentBytes, response, fetchError := gateway.client.RepositoryFiles.GetRawFile(gateway.projectIdentifier, relativePath, rawOptions, gitlab.WithContext(executionContext))
	if fetchError != nil {
		if response != nil && response.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, fetchError
	}

	return string(contentBytes), true, nil
}
