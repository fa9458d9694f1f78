package metadata

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxCandidateLines bounds how deep into a page the scorer looks.
	maxCandidateLines = 24
	// mastheadBandRatio restricts candidates to the top of the page when the
	// page height is known.
	mastheadBandRatio = 0.3
	// separatorCutset is trimmed from candidate edges before scoring.
	separatorCutset = " |-_"
	// disqualifiedScore marks candidates that can never be selected.
	disqualifiedScore = -1.0
)

// ExtractName returns the best-scoring publication-name candidate across all
// pages together with its score, or ("", 0) when no line qualifies. Earlier
// pages receive a position bonus; ties keep the earliest candidate.
func ExtractName(pages []Page) (string, float64) {
	var bestName string
	var bestScore float64
	found := false

	for pageIndex, page := range sortedPages(pages) {
		lines := ReconstructLines(page.WordBoxes)
		if len(lines) == 0 {
			continue
		}
		if len(lines) > maxCandidateLines {
			lines = lines[:maxCandidateLines]
		}

		topLimit := 0.0
		if page.PageHeight > 0 {
			topLimit = float64(page.PageHeight) * mastheadBandRatio
		}

		for _, line := range lines {
			if topLimit > 0 && line.Y > topLimit {
				continue
			}
			score := scoreNameCandidate(line.Text)
			if score <= 0 {
				continue
			}
			score += math.Max(0, 0.35-float64(pageIndex)*0.15)
			if !found || score > bestScore {
				found = true
				bestScore = score
				bestName = strings.Trim(NormalizeSpaces(line.Text), separatorCutset)
			}
		}
	}

	if !found {
		return "", 0
	}
	return bestName, bestScore
}

// scoreNameCandidate rates a single line as a publication-name candidate.
// Disqualified lines score exactly disqualifiedScore.
func scoreNameCandidate(text string) float64 {
	value := strings.Trim(NormalizeSpaces(text), separatorCutset)
	if length := utf8.RuneCountInString(value); length < 3 || length > 80 {
		return disqualifiedScore
	}

	words := strings.Fields(value)
	if len(words) > 12 {
		return disqualifiedScore
	}

	var letters, uppers, digits int
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < 3 || digits > letters {
		return disqualifiedScore
	}

	lowered := strings.ToLower(value)
	if strings.HasPrefix(lowered, "page ") || strings.HasPrefix(lowered, "www.") || strings.Contains(lowered, "http") {
		return disqualifiedScore
	}

	uppercaseRatio := 0.0
	if letters > 0 {
		uppercaseRatio = float64(uppers) / float64(letters)
	}

	score := 1.0
	score += math.Min(1.2, float64(len(words))*0.12)
	score += uppercaseRatio * 0.7
	if strings.ContainsAny(value, "&|") {
		score += 0.1
	}
	return score
}
