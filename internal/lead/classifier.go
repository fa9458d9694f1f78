// Package lead classifies article text as lead-worthy and enriches leads
// with named entities located on the page.
package lead

import "strings"

// positiveHints are keywords that signal a lead-worthy article.
var positiveHints = []string{
	"award",
	"winner",
	"honor",
	"spotlight",
	"featured",
	"returns",
	"announced",
	"recognition",
	"best",
	"top",
}

// Classification is the outcome of a lead screen.
type Classification struct {
	IsLead     bool
	Confidence float64
	Prediction string
	Reasons    []string
}

// Classify screens article text with a keyword heuristic. Two hint hits, or
// one hit in text longer than a dozen words, make a lead.
func Classify(text string) Classification {
	lowered := strings.ToLower(text)

	hits := 0
	for _, hint := range positiveHints {
		if strings.Contains(lowered, hint) {
			hits++
		}
	}

	confidence := 0.45 + float64(hits)*0.1
	if confidence > 0.95 {
		confidence = 0.95
	}

	isLead := hits >= 2 || (hits >= 1 && len(strings.Fields(lowered)) > 12)

	result := Classification{
		IsLead:  isLead,
		Reasons: []string{"keyword-heuristic"},
	}
	if isLead {
		result.Confidence = confidence
		result.Prediction = "positive"
	} else {
		result.Confidence = 1.0 - confidence
		if result.Confidence < 0.05 {
			result.Confidence = 0.05
		}
		result.Prediction = "negative"
	}
	return result
}
