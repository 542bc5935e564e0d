package source

import (
	"context"
	"fmt"
)

const connectionErrorTemplateConstant = "%s connection failed for %s: %s"

// RepositorySource exposes file access over a project regardless of backend.
//
// A missing file is reported through the found return of ReadFileContent,
// never as an error. Transport or IO failures surface as *ConnectionError.
type RepositorySource interface {
	// ListFiles returns the relative paths of every file in the project.
	ListFiles(executionContext context.Context) ([]string, error)
	// ReadFileContent returns the raw text of the file at relativePath.
	// The second return reports whether the file exists.
	ReadFileContent(executionContext context.Context, relativePath string) (string, bool, error)
	// TestConnection verifies the backend is reachable and returns the
	// project's display name.
	TestConnection(executionContext context.Context) (string, error)
}

// ConnectionError reports a fatal backend failure: bad credentials, an
// unresolvable project identifier, or a nonexistent local directory.
type ConnectionError struct {
	Backend string
	Target  string
	Cause   error
}

// Error describes the failed connection.
func (connectionError *ConnectionError) Error() string {
	return fmt.Sprintf(connectionErrorTemplateConstant, connectionError.Backend, connectionError.Target, connectionError.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (connectionError *ConnectionError) Unwrap() error {
	return connectionError.Cause
}
