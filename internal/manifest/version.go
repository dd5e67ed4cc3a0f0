package manifest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	sectionHeaderPrefixConstant              = "["
	sectionHeaderSuffixConstant              = "]"
	sectionHeaderTemplateConstant            = "[%s]"
	versionFieldPatternTemplateConstant      = `^%s\s*=\s*"([^"]+)"`
	versionFieldMissingTemplateConstant      = "field %q was not found in section [%s]"
	malformedVersionTemplateConstant         = "value %q is not a semantic version of the form major.minor.patch with an optional suffix"
	semanticVersionPatternConstant           = `^(\d+)\.(\d+)\.(\d+)((?:[-+]).*)?$`
	semanticVersionComponentCountConstant    = 3
	comparisonLessConstant                   = -1
	comparisonEqualConstant                  = 0
	comparisonGreaterConstant                = 1
)

var semanticVersionExpression = regexp.MustCompile(semanticVersionPatternConstant)

// SemanticVersion holds a parsed major.minor.patch triple with its optional suffix.
type SemanticVersion struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string
}

// String renders the version including its suffix.
func (version SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d%s", version.Major, version.Minor, version.Patch, version.Suffix)
}

// Compare orders two versions lexicographically on (major, minor, patch).
// Suffixes never participate, so versions differing only by suffix compare equal.
func (version SemanticVersion) Compare(other SemanticVersion) int {
	versionComponents := [semanticVersionComponentCountConstant]int{version.Major, version.Minor, version.Patch}
	otherComponents := [semanticVersionComponentCountConstant]int{other.Major, other.Minor, other.Patch}

	for componentIndex := 0; componentIndex < semanticVersionComponentCountConstant; componentIndex++ {
		if versionComponents[componentIndex] < otherComponents[componentIndex] {
			return comparisonLessConstant
		}
		if versionComponents[componentIndex] > otherComponents[componentIndex] {
			return comparisonGreaterConstant
		}
	}
	return comparisonEqualConstant
}

// ParseSemanticVersion parses a major.minor.patch string with an optional
// suffix introduced by '-' or '+'.
func ParseSemanticVersion(value string) (SemanticVersion, error) {
	expressionMatch := semanticVersionExpression.FindStringSubmatch(value)
	if expressionMatch == nil {
		return SemanticVersion{}, fmt.Errorf(malformedVersionTemplateConstant, value)
	}

	majorComponent, _ := strconv.Atoi(expressionMatch[1])
	minorComponent, _ := strconv.Atoi(expressionMatch[2])
	patchComponent, _ := strconv.Atoi(expressionMatch[3])

	return SemanticVersion{
		Major:  majorComponent,
		Minor:  minorComponent,
		Patch:  patchComponent,
		Suffix: expressionMatch[4],
	}, nil
}

// ExtractVersion scans the manifest content for the first
// fieldName = "value" line inside the named bracketed section and returns
// the quoted value. Section matching is exact string equality against the
// literal header line; any other bracketed line ends the section.
func ExtractVersion(content string, sectionName string, fieldName string) (string, error) {
	targetSectionHeader := fmt.Sprintf(sectionHeaderTemplateConstant, sectionName)
	fieldExpression := regexp.MustCompile(fmt.Sprintf(versionFieldPatternTemplateConstant, regexp.QuoteMeta(fieldName)))

	insideTargetSection := false
	for _, rawLine := range strings.Split(content, "\n") {
		trimmedLine := strings.TrimSpace(rawLine)

		if strings.HasPrefix(trimmedLine, sectionHeaderPrefixConstant) && strings.HasSuffix(trimmedLine, sectionHeaderSuffixConstant) {
			insideTargetSection = trimmedLine == targetSectionHeader
			continue
		}

		if !insideTargetSection {
			continue
		}

		if fieldMatch := fieldExpression.FindStringSubmatch(trimmedLine); fieldMatch != nil {
			return fieldMatch[1], nil
		}
	}

	return "", fmt.Errorf(versionFieldMissingTemplateConstant, fieldName, sectionName)
}
