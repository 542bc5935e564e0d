package pyversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	operatorGreaterOrEqualConstant    = ">="
	operatorGreaterConstant           = ">"
	operatorCompatibleReleaseConstant = "~="
	operatorExactMatchConstant        = "=="
	specifierSeparatorConstant        = ","
	versionComponentSeparatorConstant = "."
	emptySpecifierMessageConstant     = "empty version specifier"
	invalidVersionTemplateConstant    = "invalid version %q"
)

// Operator enumerates supported version specifier operators.
type Operator string

// Specifier operators recognized by the comparator.
const (
	OperatorGreaterOrEqual    Operator = Operator(operatorGreaterOrEqualConstant)
	OperatorGreater           Operator = Operator(operatorGreaterConstant)
	OperatorCompatibleRelease Operator = Operator(operatorCompatibleReleaseConstant)
	OperatorExactMatch        Operator = Operator(operatorExactMatchConstant)
)

// orderedOperators lists operators longest-prefix first so ">=" wins over ">".
var orderedOperators = []Operator{
	OperatorGreaterOrEqual,
	OperatorCompatibleRelease,
	OperatorExactMatch,
	OperatorGreater,
}

// ErrEmptySpecifier indicates the specifier text contained no version at all.
var ErrEmptySpecifier = errors.New(emptySpecifierMessageConstant)

// Version represents a dotted numeric version as ordered integer components.
type Version []int

// ParseVersion converts dotted numeric text such as "3.10.2" into a Version.
func ParseVersion(versionText string) (Version, error) {
	trimmed := strings.TrimSpace(versionText)
	if len(trimmed) == 0 {
		return nil, ErrEmptySpecifier
	}

	components := strings.Split(trimmed, versionComponentSeparatorConstant)
	parsed := make(Version, 0, len(components))
	for _, component := range components {
		numericValue, conversionError := strconv.Atoi(strings.TrimSpace(component))
		if conversionError != nil || numericValue < 0 {
			return nil, fmt.Errorf(invalidVersionTemplateConstant, versionText)
		}
		parsed = append(parsed, numericValue)
	}
	return parsed, nil
}

// String renders the version in its canonical dotted form.
func (version Version) String() string {
	rendered := make([]string, len(version))
	for index, component := range version {
		rendered[index] = strconv.Itoa(component)
	}
	return strings.Join(rendered, versionComponentSeparatorConstant)
}

// CompareVersions orders two dotted numeric versions component by component,
// padding the shorter sequence with zeros. It returns a negative value when
// first precedes second, zero when equal, and a positive value otherwise.
func CompareVersions(first Version, second Version) int {
	length := len(first)
	if len(second) > length {
		length = len(second)
	}
	for index := 0; index < length; index++ {
		firstComponent := 0
		if index < len(first) {
			firstComponent = first[index]
		}
		secondComponent := 0
		if index < len(second) {
			secondComponent = second[index]
		}
		if firstComponent != secondComponent {
			return firstComponent - secondComponent
		}
	}
	return 0
}

// Specifier pairs an operator with a dotted numeric version.
type Specifier struct {
	Operator Operator
	Version  Version
	Raw      string
}

// ParseSpecifier parses specifier text such as ">=3.9" or "~=3.10,<4" into a
// Specifier. Multi-clause specifiers keep only the leading clause. Text with
// no operator is treated as an exact pin.
func ParseSpecifier(specifierText string) (Specifier, error) {
	trimmed := strings.TrimSpace(specifierText)
	if len(trimmed) == 0 {
		return Specifier{}, ErrEmptySpecifier
	}

	leadingClause := strings.Split(trimmed, specifierSeparatorConstant)[0]
	leadingClause = strings.Join(strings.Fields(leadingClause), "")
	if len(leadingClause) == 0 {
		return Specifier{}, ErrEmptySpecifier
	}

	operator := OperatorExactMatch
	versionText := leadingClause
	for _, candidateOperator := range orderedOperators {
		if strings.HasPrefix(leadingClause, string(candidateOperator)) {
			operator = candidateOperator
			versionText = strings.TrimPrefix(leadingClause, string(candidateOperator))
			break
		}
	}

	parsedVersion, parseError := ParseVersion(versionText)
	if parseError != nil {
		return Specifier{}, parseError
	}

	return Specifier{Operator: operator, Version: parsedVersion, Raw: trimmed}, nil
}

// Allows reports whether the candidate version satisfies the specifier under
// the documented operator semantics.
func (specifier Specifier) Allows(candidate Version) bool {
	comparison := CompareVersions(candidate, specifier.Version)
	switch specifier.Operator {
	case OperatorGreaterOrEqual:
		return comparison >= 0
	case OperatorGreater:
		return comparison > 0
	case OperatorExactMatch:
		return comparison == 0
	case OperatorCompatibleRelease:
		return comparison >= 0 && CompareVersions(candidate, specifier.compatibleReleaseBoundary()) < 0
	default:
		return false
	}
}

// SatisfiesMinimum reports whether the lowest version admitted by the
// specifier meets the supplied minimum requirement.
func (specifier Specifier) SatisfiesMinimum(minimum Version) bool {
	return CompareVersions(specifier.Version, minimum) >= 0
}

// compatibleReleaseBoundary computes the first version excluded by a
// compatible-release clause: all components but the last are kept and the new
// trailing component is incremented, so ~=3.9 admits versions below 4.0 and
// ~=3.9.1 admits versions below 3.10.
func (specifier Specifier) compatibleReleaseBoundary() Version {
	if len(specifier.Version) < 2 {
		return Version{specifier.Version[0] + 1}
	}
	boundary := make(Version, len(specifier.Version)-1)
	copy(boundary, specifier.Version[:len(specifier.Version)-1])
	boundary[len(boundary)-1]++
	return boundary
}
