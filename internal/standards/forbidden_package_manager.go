package standards

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/pystandards/internal/source"
)

const (
	forbiddenManagerDescriptionConstant    = "Project MUST NOT use conda"
	forbiddenManagerRecommendationConstant = "Remove conda dependencies and use uv, poetry, or pip instead"
	condaEnvironmentFileNameConstant       = "environment.yml"
	condaRunControlFileNameConstant        = ".condarc"
	yamlFileSuffixConstant                 = ".yml"
	yamlAlternateFileSuffixConstant        = ".yaml"
	shellFileSuffixConstant                = ".sh"
	condaUsageDetectedTemplateConstant     = "conda usage in %s"
)

// condaSentinelFileNames are checked against the listing before any content
// is read: their presence alone fails the standard.
var condaSentinelFileNames = []string{
	condaEnvironmentFileNameConstant,
	condaRunControlFileNameConstant,
}

// condaInvocationTokens identify conda usage inside CI configuration and
// shell scripts.
var condaInvocationTokens = []string{
	"conda install",
	"conda env",
	"conda activate",
	"conda create",
	"conda run",
}

// ForbiddenPackageManagerStandard fails when the project uses conda, either
// through sentinel files or through invocations in CI configuration and
// shell scripts. Sentinel filenames are checked first; content scanning only
// runs when the cheap check comes back clean.
type ForbiddenPackageManagerStandard struct{}

// NewForbiddenPackageManagerStandard constructs the PY004 standard.
func NewForbiddenPackageManagerStandard() *ForbiddenPackageManagerStandard {
	return &ForbiddenPackageManagerStandard{}
}

// Definition returns the PY004 metadata.
func (standard *ForbiddenPackageManagerStandard) Definition() Definition {
	return Definition{
		Code:           CodeForbiddenPackageManager,
		Category:       CategoryDependencyManagement,
		Description:    forbiddenManagerDescriptionConstant,
		Severity:       SeverityCritical,
		Recommendation: forbiddenManagerRecommendationConstant,
	}
}

// Evaluate checks sentinel filenames, then scans YAML and shell file
// contents for conda invocations.
func (standard *ForbiddenPackageManagerStandard) Evaluate(executionContext context.Context, repositorySource source.RepositorySource) (Outcome, error) {
	relativePaths, listError := repositorySource.ListFiles(executionContext)
	if listError != nil {
		return Outcome{}, listError
	}

	for _, sentinelFileName := range condaSentinelFileNames {
		for _, relativePath := range relativePaths {
			if relativePath == sentinelFileName {
				return Outcome{Passed: false, DetectedValue: sentinelFileName}, nil
			}
		}
	}

	for _, relativePath := range relativePaths {
		if !isScannableFile(relativePath) {
			continue
		}

		content, exists, readError := repositorySource.ReadFileContent(executionContext, relativePath)
		if readError != nil {
			return Outcome{}, readError
		}
		if !exists {
			continue
		}

		if containsCondaInvocation(relativePath, content) {
			return Outcome{Passed: false, DetectedValue: fmt.Sprintf(condaUsageDetectedTemplateConstant, relativePath)}, nil
		}
	}

	return Outcome{Passed: true}, nil
}

func isScannableFile(relativePath string) bool {
	return strings.HasSuffix(relativePath, yamlFileSuffixConstant) ||
		strings.HasSuffix(relativePath, yamlAlternateFileSuffixConstant) ||
		strings.HasSuffix(relativePath, shellFileSuffixConstant)
}

// containsCondaInvocation scans YAML documents structurally where possible so
// tokens inside comments do not trigger false positives. Shell scripts and
// unparseable YAML fall back to a raw text scan.
func containsCondaInvocation(relativePath string, content string) bool {
	if strings.HasSuffix(relativePath, yamlFileSuffixConstant) || strings.HasSuffix(relativePath, yamlAlternateFileSuffixConstant) {
		var documentRoot yaml.Node
		if unmarshalError := yaml.Unmarshal([]byte(content), &documentRoot); unmarshalError == nil {
			return yamlNodeContainsToken(&documentRoot)
		}
	}
	return textContainsToken(content)
}

func yamlNodeContainsToken(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	if node.Kind == yaml.ScalarNode && textContainsToken(node.Value) {
		return true
	}
	for _, childNode := range node.Content {
		if yamlNodeContainsToken(childNode) {
			return true
		}
	}
	return false
}

func textContainsToken(text string) bool {
	for _, invocationToken := range condaInvocationTokens {
		if strings.Contains(text, invocationToken) {
			return true
		}
	}
	return false
}
