package pyversion

import (
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	projectSpecificationFileNameConstant = "pyproject.toml"
	setupScriptFileNameConstant          = "setup.py"
	containerDefinitionFileNameConstant  = "Dockerfile"
	shellScriptSuffixConstant            = ".sh"
)

// DetectionSource identifies the kind of project file a version requirement
// was extracted from.
type DetectionSource string

// Detection sources in priority order.
const (
	DetectionSourceProjectSpecification DetectionSource = "pyproject"
	DetectionSourceSetupScript          DetectionSource = "setup"
	DetectionSourceContainerDefinition  DetectionSource = "dockerfile"
	DetectionSourceShellScript          DetectionSource = "shell"
)

// DetectionRule binds a repository file selector to the extraction logic for
// that file kind. Rules are data-driven so adding a file kind never requires
// new branching in callers.
type DetectionRule struct {
	Source      DetectionSource
	MatchesFile func(relativePath string) bool
	Extract     func(content string) (string, bool)
}

var (
	setupScriptRequirementPattern       = regexp.MustCompile(`python_requires\s*=\s*["']([^"']+)["']`)
	containerBaseImagePattern           = regexp.MustCompile(`python:(\d+\.\d+(?:\.\d+)?)`)
	shellInterpreterPattern             = regexp.MustCompile(`python(\d+\.\d+)`)
	projectSpecificationFallbackPattern = regexp.MustCompile(`requires-python\s*=\s*["']([^"']+)["']`)
)

// projectSpecificationDocument captures the subset of pyproject.toml needed
// for version detection.
type projectSpecificationDocument struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

// DetectionRules returns the ordered extraction table. Earlier rules take
// priority: the project specification wins over the setup script, which wins
// over the container definition, which wins over shell scripts.
func DetectionRules() []DetectionRule {
	return []DetectionRule{
		{
			Source:      DetectionSourceProjectSpecification,
			MatchesFile: matchesExactName(projectSpecificationFileNameConstant),
			Extract:     extractFromProjectSpecification,
		},
		{
			Source:      DetectionSourceSetupScript,
			MatchesFile: matchesExactName(setupScriptFileNameConstant),
			Extract:     extractFirstGroup(setupScriptRequirementPattern),
		},
		{
			Source:      DetectionSourceContainerDefinition,
			MatchesFile: matchesExactName(containerDefinitionFileNameConstant),
			Extract:     extractFirstGroup(containerBaseImagePattern),
		},
		{
			Source: DetectionSourceShellScript,
			MatchesFile: func(relativePath string) bool {
				return strings.HasSuffix(relativePath, shellScriptSuffixConstant)
			},
			Extract: extractFirstGroup(shellInterpreterPattern),
		},
	}
}

func matchesExactName(fileName string) func(string) bool {
	return func(relativePath string) bool {
		return relativePath == fileName
	}
}

func extractFirstGroup(pattern *regexp.Regexp) func(string) (string, bool) {
	return func(content string) (string, bool) {
		match := pattern.FindStringSubmatch(content)
		if match == nil {
			return "", false
		}
		return match[1], true
	}
}

// extractFromProjectSpecification reads project.requires-python from TOML,
// falling back to a textual scan when the document does not parse.
func extractFromProjectSpecification(content string) (string, bool) {
	var document projectSpecificationDocument
	if unmarshalError := toml.Unmarshal([]byte(content), &document); unmarshalError == nil {
		requirement := strings.TrimSpace(document.Project.RequiresPython)
		if len(requirement) > 0 {
			return requirement, true
		}
		return "", false
	}

	match := projectSpecificationFallbackPattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}
