package lead

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tgn-press/pipeline/internal/metadata"
)

const (
	maxHeaderRunes   = 180
	maxEntities      = 8
	headerCandidates = 3
)

var (
	personNamePattern   = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	companyTokenPattern = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&\-. ]{1,40}\b`)
)

var companySuffixes = []string{"Inc", "LLC", "Ltd", "Company", "Co", "Corporation", "Corp", "Labs"}

// EntityBox is a named entity located on the page.
type EntityBox struct {
	Name string    `json:"name"`
	BBox []float64 `json:"bbox"`
}

// Enrichment is the detail extracted from a lead.
type Enrichment struct {
	ArticleHeader     string
	ArticleHeaderBBox []float64
	PersonNames       []string
	PersonNameBoxes   []EntityBox
	CompanyNames      []string
	CompanyNameBoxes  []EntityBox
}

// Enrich pulls a header and person/company entities out of article text and
// locates each on the page via its word boxes.
func Enrich(text string, wordBoxes []metadata.WordBox) Enrichment {
	header := pickHeader(text)

	persons := extractPersonNames(text)
	companies := extractCompanyNames(text)

	return Enrichment{
		ArticleHeader:     header,
		ArticleHeaderBBox: FindPhraseBBox(header, wordBoxes),
		PersonNames:       persons,
		PersonNameBoxes:   locateEntities(persons, wordBoxes),
		CompanyNames:      companies,
		CompanyNameBoxes:  locateEntities(companies, wordBoxes),
	}
}

// pickHeader chooses the longest of the first few non-blank lines, capped at
// a fixed rune length. Text with no lines falls back to its first ten words.
func pickHeader(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	var header string
	if len(lines) > 0 {
		candidates := lines
		if len(candidates) > headerCandidates {
			candidates = candidates[:headerCandidates]
		}
		header = candidates[0]
		for _, line := range candidates[1:] {
			if len(line) > len(header) {
				header = line
			}
		}
	} else {
		words := strings.Fields(text)
		if len(words) > 10 {
			words = words[:10]
		}
		header = strings.Join(words, " ")
		if header == "" {
			header = "Untitled lead"
		}
	}

	runes := []rune(header)
	if len(runes) > maxHeaderRunes {
		header = string(runes[:maxHeaderRunes])
	}
	return header
}

func extractPersonNames(text string) []string {
	candidates := personNamePattern.FindAllString(text, -1)
	var deduped []string
	for _, candidate := range candidates {
		if !contains(deduped, candidate) {
			deduped = append(deduped, candidate)
		}
		if len(deduped) == maxEntities {
			break
		}
	}
	return deduped
}

func extractCompanyNames(text string) []string {
	tokens := companyTokenPattern.FindAllString(text, -1)
	var companies []string
	for _, token := range tokens {
		if !hasCompanySuffix(token) || contains(companies, token) {
			continue
		}
		companies = append(companies, strings.TrimSpace(token))
		if len(companies) == maxEntities {
			break
		}
	}
	return companies
}

func hasCompanySuffix(token string) bool {
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// normalizeToken strips leading and trailing punctuation and lowercases, so
// phrase tokens match OCR words regardless of surrounding symbols.
func normalizeToken(token string) string {
	trimmed := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(trimmed)
}

// FindPhraseBBox locates a phrase as a contiguous run of word boxes and
// returns the union box [x1,y1,x2,y2], or nil when the phrase does not
// appear.
func FindPhraseBBox(phrase string, wordBoxes []metadata.WordBox) []float64 {
	var phraseTokens []string
	for _, token := range strings.Fields(phrase) {
		if normalized := normalizeToken(token); normalized != "" {
			phraseTokens = append(phraseTokens, normalized)
		}
	}
	if len(phraseTokens) == 0 {
		return nil
	}

	normalizedWords := make([]string, len(wordBoxes))
	for i, word := range wordBoxes {
		normalizedWords[i] = normalizeToken(word.Text)
	}

	for start := 0; start+len(phraseTokens) <= len(normalizedWords); start++ {
		if !windowMatches(normalizedWords[start:start+len(phraseTokens)], phraseTokens) {
			continue
		}

		matched := wordBoxes[start : start+len(phraseTokens)]
		if anyMalformed(matched) {
			continue
		}
		box := []float64{matched[0].BBox[0], matched[0].BBox[1], matched[0].BBox[2], matched[0].BBox[3]}
		for _, word := range matched[1:] {
			if word.BBox[0] < box[0] {
				box[0] = word.BBox[0]
			}
			if word.BBox[1] < box[1] {
				box[1] = word.BBox[1]
			}
			if word.BBox[2] > box[2] {
				box[2] = word.BBox[2]
			}
			if word.BBox[3] > box[3] {
				box[3] = word.BBox[3]
			}
		}
		return box
	}
	return nil
}

func anyMalformed(words []metadata.WordBox) bool {
	for _, w := range words {
		if len(w.BBox) != 4 {
			return true
		}
	}
	return false
}

func windowMatches(window, tokens []string) bool {
	for i := range tokens {
		if window[i] != tokens[i] {
			return false
		}
	}
	return true
}

func locateEntities(names []string, wordBoxes []metadata.WordBox) []EntityBox {
	var boxes []EntityBox
	for _, name := range names {
		if bbox := FindPhraseBBox(name, wordBoxes); bbox != nil {
			boxes = append(boxes, EntityBox{Name: name, BBox: bbox})
		}
	}
	return boxes
}
