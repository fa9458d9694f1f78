package metadata

import (
	"regexp"
	"strings"
)

const (
	datePageLimit = 2
	dateLineLimit = 30
)

var (
	monthDatePattern = regexp.MustCompile(
		`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|` +
			`jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|` +
			`dec(?:ember)?)\b[^.\n]{0,30}\b\d{4}\b`)
	numericDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
)

// ExtractDate scans the first two pages for a calendar date and returns the
// first match, preferring month-name dates over numeric ones on each page.
// Returns "" when neither page matches.
func ExtractDate(pages []Page) string {
	ordered := sortedPages(pages)
	if len(ordered) > datePageLimit {
		ordered = ordered[:datePageLimit]
	}

	for _, page := range ordered {
		lines := ReconstructLines(page.WordBoxes)
		if len(lines) > dateLineLimit {
			lines = lines[:dateLineLimit]
		}
		parts := make([]string, 0, len(lines))
		for _, line := range lines {
			parts = append(parts, line.Text)
		}
		blob := strings.Join(parts, " ")

		if match := monthDatePattern.FindString(blob); match != "" {
			return NormalizeSpaces(match)
		}
		if match := numericDatePattern.FindString(blob); match != "" {
			return match
		}
	}
	return ""
}
