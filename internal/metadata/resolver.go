package metadata

import (
	"context"

	"github.com/tgn-press/pipeline/internal/observability"
)

// arbitrationScoreThreshold is the heuristic score below which an external
// opinion is worth asking for.
const arbitrationScoreThreshold = 1.85

// Arbiter obtains an external language-model opinion on publication metadata.
// Implementations never return errors: "no opinion" is an empty string for
// each field, whatever the underlying cause.
type Arbiter interface {
	ResolveMetadata(ctx context.Context, pages []Page, fallbackName string) (name, date string)
}

// Resolver orchestrates the heuristic extractors, the optional arbiter, and
// the filename fallback into one non-failing decision. It is stateless and
// safe for concurrent use.
type Resolver struct {
	arbiter Arbiter
	logger  *observability.Logger
}

// NewResolver creates a Resolver. A nil arbiter disables arbitration.
func NewResolver(arbiter Arbiter, logger *observability.Logger) *Resolver {
	return &Resolver{arbiter: arbiter, logger: logger}
}

// Resolve runs the heuristics, consults the arbiter when the heuristic result
// is weak or incomplete, and picks the final metadata. It always succeeds;
// absent fields are nil.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	name, score := ExtractName(req.Pages)
	date := ExtractDate(req.Pages)

	var llmName, llmDate string
	if r.arbiter != nil && shouldArbitrate(name, score, date) {
		llmName, llmDate = r.arbiter.ResolveMetadata(ctx, req.Pages, req.FallbackName)
	}

	r.logger.Debug().
		Str("heuristic_name", name).
		Float64("heuristic_score", score).
		Str("heuristic_date", date).
		Bool("arbitrated", llmName != "" || llmDate != "").
		Msg("metadata heuristics complete")

	var result Result
	switch {
	case llmName != "" && !LooksCryptic(llmName):
		result.PublicationName = &llmName
	case name != "":
		result.PublicationName = &name
	default:
		if pretty := PrettifyFallback(req.FallbackName); pretty != "" && !LooksCryptic(pretty) {
			result.PublicationName = &pretty
		}
	}

	if llmDate != "" {
		result.PublicationDate = &llmDate
	} else if date != "" {
		result.PublicationDate = &date
	}
	return result
}

// shouldArbitrate gates the external call: a missing, cryptic, or low-scoring
// name, or a missing date, warrants a second opinion. Once a call happens, a
// confident arbiter name takes precedence over the heuristic name even when
// the trigger was a missing date alone.
func shouldArbitrate(name string, score float64, date string) bool {
	return name == "" || LooksCryptic(name) || score < arbitrationScoreThreshold || date == ""
}
