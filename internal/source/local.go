package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const (
	localBackendNameConstant      = "local"
	notADirectoryMessageConstant  = "not a directory"
	gitMetadataDirectoryConstant  = ".git"
	mercurialMetadataDirConstant  = ".hg"
	subversionMetadataDirConstant = ".svn"
	currentDirectoryNameConstant  = "."
)

var ignorableDirectoryNames = map[string]struct{}{
	gitMetadataDirectoryConstant:  {},
	mercurialMetadataDirConstant:  {},
	subversionMetadataDirConstant: {},
}

// cachedFileContent stores the outcome of one disk read, including misses so
// repeated lookups of an absent file stay cheap.
type cachedFileContent struct {
	content string
	exists  bool
}

// LocalRepositorySource serves project files from a directory tree on disk.
type LocalRepositorySource struct {
	rootPath     string
	listedFiles  []string
	listingDone  bool
	contentCache map[string]cachedFileContent
}

// NewLocalRepositorySource constructs a source rooted at directoryPath. The
// root is validated by TestConnection, not at construction time.
func NewLocalRepositorySource(directoryPath string) *LocalRepositorySource {
	return &LocalRepositorySource{
		rootPath:     directoryPath,
		contentCache: make(map[string]cachedFileContent),
	}
}

// TestConnection verifies the root exists and is a directory, returning the
// directory's base name as the project display name.
func (repositorySource *LocalRepositorySource) TestConnection(executionContext context.Context) (string, error) {
	rootInformation, statError := os.Stat(repositorySource.rootPath)
	if statError != nil {
		return "", &ConnectionError{Backend: localBackendNameConstant, Target: repositorySource.rootPath, Cause: statError}
	}
	if !rootInformation.IsDir() {
		return "", &ConnectionError{Backend: localBackendNameConstant, Target: repositorySource.rootPath, Cause: errors.New(notADirectoryMessageConstant)}
	}

	displayName := filepath.Base(repositorySource.rootPath)
	if displayName == currentDirectoryNameConstant {
		if absolutePath, absoluteError := filepath.Abs(repositorySource.rootPath); absoluteError == nil {
			displayName = filepath.Base(absolutePath)
		}
	}
	return displayName, nil
}

// ListFiles walks the directory tree and returns sorted relative paths,
// skipping version-control metadata directories. The listing is computed once
// per instance.
func (repositorySource *LocalRepositorySource) ListFiles(executionContext context.Context) ([]string, error) {
	if repositorySource.listingDone {
		return repositorySource.listedFiles, nil
	}

	var relativePaths []string
	walkError := filepath.WalkDir(repositorySource.rootPath, func(path string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}

		if directoryEntry.IsDir() {
			if _, ignorable := ignorableDirectoryNames[directoryEntry.Name()]; ignorable {
				return fs.SkipDir
			}
			return nil
		}

		relativePath, relativeError := filepath.Rel(repositorySource.rootPath, path)
		if relativeError != nil {
			return relativeError
		}
		relativePaths = append(relativePaths, filepath.ToSlash(relativePath))
		return nil
	})
	if walkError != nil {
		return nil, &ConnectionError{Backend: localBackendNameConstant, Target: repositorySource.rootPath, Cause: walkError}
	}

	sort.Strings(relativePaths)
	repositorySource.listedFiles = relativePaths
	repositorySource.listingDone = true
	return repositorySource.listedFiles, nil
}

// ReadFileContent reads the file at relativePath from disk, caching both
// hits and misses for the lifetime of the source.
func (repositorySource *LocalRepositorySource) ReadFileContent(executionContext context.Context, relativePath string) (string, bool, error) {
	if cached, found := repositorySource.contentCache[relativePath]; found {
		return cached.content, cached.exists, nil
	}

	absolutePath := filepath.Join(repositorySource.rootPath, filepath.FromSlash(relativePath))
	contentBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			repositorySource.contentCache[relativePath] = cachedFileContent{}
			return "", false, nil
		}
		return "", false, readError
	}

	cached := cachedFileContent{content: string(contentBytes), exists: true}
	repositorySource.contentCache[relativePath] = cached
	return cached.content, cached.exists, nil
}
