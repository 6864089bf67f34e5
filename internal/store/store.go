// Package store persists crawl output. Two backends: newline-delimited JSON
// for piping into other tools, and SQLite for queryable local runs.
package store

import (
	"context"

	"github.com/sells-group/contact-crawler/internal/model"
)

// Emitter receives finished domain records. Emit is called once per domain,
// in completion order; Close flushes and releases the backend.
type Emitter interface {
	Emit(ctx context.Context, rec *model.DomainRecord) error
	Close() error
}

// RunSummary aggregates one batch invocation for the sqlite backend.
type RunSummary struct {
	Domains int `json:"domains"`
	Failed  int `json:"failed"`
}
