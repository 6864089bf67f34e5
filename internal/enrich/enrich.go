// Package enrich adds LLM-extracted facts on top of the heuristic extractors.
// Enrichment is strictly additive and optional: the crawl produces a correct
// record with the extractor absent or failing on every call.
package enrich

import (
	"context"

	"github.com/sells-group/contact-crawler/internal/model"
)

// PageHint tells the extractor what kind of page it is reading, so the prompt
// can focus on the fields that page usually carries.
type PageHint string

const (
	HintGeneral PageHint = "general"
	HintLegal   PageHint = "legal"
	HintContact PageHint = "contact"
	HintTeam    PageHint = "team"
)

// Result is a partial structured guess. Nil fields mean the model found
// nothing; the caller merges first-writer-wins with the heuristic facts.
type Result struct {
	Company *model.CompanyFact
	Team    []model.TeamMemberFact
}

// Extractor produces a structured guess from page HTML. Implementations must
// never be load-bearing: any error is logged by the caller and swallowed.
type Extractor interface {
	Extract(ctx context.Context, html, pageURL string, hint PageHint) (*Result, error)
}
