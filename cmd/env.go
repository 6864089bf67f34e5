package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-crawler/internal/crawler"
	"github.com/sells-group/contact-crawler/internal/enrich"
	"github.com/sells-group/contact-crawler/internal/fetch"
	"github.com/sells-group/contact-crawler/internal/store"
	anthropicpkg "github.com/sells-group/contact-crawler/pkg/anthropic"
)

// env bundles the wired crawler and output backend for one invocation.
type env struct {
	Crawler *crawler.Crawler
	Emitter store.Emitter

	// SQLite is set when the emitter is the sqlite backend, for run summaries.
	SQLite *store.SQLiteEmitter

	closers []func() error
}

// buildEnv wires the fetch chain, optional enrichment, and the configured
// output backend from the loaded config.
func buildEnv(ctx context.Context) (*env, error) {
	e := &env{}

	timeout := time.Duration(cfg.Crawl.TimeoutSecs) * time.Second
	httpFetcher := fetch.NewHTTPFetcher(timeout, cfg.Crawl.RequestsPerSec)

	var render fetch.Fetcher
	if cfg.Crawl.UseRenderFallback {
		rf := fetch.NewRenderFetcher(timeout)
		e.closers = append(e.closers, rf.Close)
		render = rf
	}

	var enricher enrich.Extractor
	if cfg.Enrich.Enabled {
		if cfg.Enrich.Key == "" {
			zap.L().Warn("enrichment enabled without an API key, skipping")
		} else {
			client := anthropicpkg.NewClient(cfg.Enrich.Key)
			enricher = enrich.NewAnthropicExtractor(client, cfg.Enrich.Model)
		}
	}

	e.Crawler = crawler.New(fetch.NewChain(httpFetcher, render), enricher)

	emitter, sqlite, err := newEmitter(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.Emitter = emitter
	e.SQLite = sqlite
	e.closers = append(e.closers, emitter.Close)

	return e, nil
}

func newEmitter(ctx context.Context) (store.Emitter, *store.SQLiteEmitter, error) {
	switch cfg.Store.Format {
	case "jsonl", "":
		em, err := store.NewJSONLEmitter(cfg.Store.Path)
		return em, nil, err
	case "sqlite":
		path := cfg.Store.Path
		if path == "" || path == "-" {
			path = "crawler.db"
		}
		em, err := store.NewSQLite(ctx, path)
		return em, em, err
	default:
		return nil, nil, eris.Errorf("unknown store format: %s", cfg.Store.Format)
	}
}

// Close releases resources in reverse acquisition order.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			zap.L().Warn("close failed", zap.Error(err))
		}
	}
}
