package metadata

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uuidLikePattern = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	fileExtensionPattern = regexp.MustCompile(`\.[^./\\]+$`)
	compactStripPattern  = regexp.MustCompile(`[\s_\-.]`)
	hexRunPattern        = regexp.MustCompile(`^[0-9a-fA-F]{20,}$`)
	digitRunPattern      = regexp.MustCompile(`^\d{8,}$`)
)

var titleCaser = cases.Title(language.English)

// LooksCryptic reports whether a candidate name resembles a machine-generated
// filename, hash, or UUID rather than a human-chosen title.
func LooksCryptic(name string) bool {
	candidate := stripFileExtension(name)
	if candidate == "" {
		return true
	}

	compact := compactStripPattern.ReplaceAllString(candidate, "")
	if compact == "" {
		return true
	}
	if uuidLikePattern.MatchString(candidate) {
		return true
	}
	if hexRunPattern.MatchString(compact) {
		return true
	}
	if digitRunPattern.MatchString(compact) {
		return true
	}

	var letters, digits int
	for _, r := range compact {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	return letters < 4 && digits >= 6
}

// PrettifyFallback turns a raw filename into a human-readable name candidate.
// Returns "" when nothing usable remains.
func PrettifyFallback(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(stripFileExtension(name))
	cleaned = NormalizeSpaces(cleaned)
	if cleaned == "" {
		return ""
	}
	if isAllUpper(cleaned) {
		return titleCaser.String(cleaned)
	}
	return cleaned
}

func stripFileExtension(name string) string {
	return strings.TrimSpace(fileExtensionPattern.ReplaceAllString(name, ""))
}

// isAllUpper reports whether s contains at least one cased letter and no
// lowercase ones.
func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
