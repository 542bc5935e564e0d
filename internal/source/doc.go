// Package source abstracts where project files live, hiding whether they
// come from a GitLab project or a local directory.
//
// It exposes RepositorySource as the capability contract consumed by
// standard evaluators, with GitLabRepositorySource and LocalRepositorySource
// as the two concrete backends. Both cache file listings and file contents
// for the lifetime of the instance.
package source
