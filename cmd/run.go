package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/store"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

var runFile string

var runCmd = &cobra.Command{
	Use:   "run [url...]",
	Short: "Crawl one or more websites and emit domain records",
	Long:  "Accepts seed URLs as arguments and/or from a file (one URL per line). URLs sharing a registrable domain are collapsed into a single crawl.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		urls := append([]string{}, args...)
		if runFile != "" {
			fromFile, err := readURLFile(runFile)
			if err != nil {
				return err
			}
			urls = append(urls, fromFile...)
		}
		if len(urls) == 0 {
			return eris.New("no URLs given: pass them as arguments or via --file")
		}

		seeds := groupByDomain(urls)
		zap.L().Info("starting batch",
			zap.Int("urls", len(urls)),
			zap.Int("domains", len(seeds)),
		)

		e, err := buildEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		opts := cfg.Crawl.Options()
		results := make(chan *model.DomainRecord)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrentDomains)
		go func() {
			for _, seed := range seeds {
				seed := seed
				g.Go(func() error {
					rec, err := e.Crawler.CrawlDomain(gctx, seed.url, opts)
					if err != nil {
						zap.L().Warn("domain crawl failed",
							zap.String("domain", seed.domain),
							zap.Error(err),
						)
						rec = &model.DomainRecord{
							Domain: seed.domain,
							Errors: []model.PageError{{URL: seed.url, Error: err.Error()}},
						}
					}
					select {
					case results <- rec:
					case <-gctx.Done():
					}
					return nil
				})
			}
			g.Wait()
			close(results)
		}()

		var domains, failed int
		for rec := range results {
			domains++
			if len(rec.PagesVisited) == 0 {
				failed++
			}
			if err := e.Emitter.Emit(ctx, rec); err != nil {
				return eris.Wrapf(err, "emit %s", rec.Domain)
			}
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if e.SQLite != nil {
			summary := store.RunSummary{Domains: domains, Failed: failed}
			if err := e.SQLite.FinishRun(ctx, summary); err != nil {
				return err
			}
		}

		zap.L().Info("batch complete",
			zap.Int("domains", domains),
			zap.Int("failed", failed),
		)
		return nil
	},
}

// seed is one crawl target: the registrable domain and the URL chosen to
// start from.
type seed struct {
	domain string
	url    string
}

// groupByDomain collapses the input URLs to one seed per registrable domain,
// preserving first-seen domain order. Among a domain's URLs the non-www
// variant wins, then the shorter one.
func groupByDomain(urls []string) []seed {
	index := make(map[string]int)
	var seeds []seed
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		domain := urlutil.RegistrableDomain(raw)
		if domain == "" {
			zap.L().Warn("skipping URL with no registrable domain", zap.String("url", raw))
			continue
		}
		i, ok := index[domain]
		if !ok {
			index[domain] = len(seeds)
			seeds = append(seeds, seed{domain: domain, url: raw})
			continue
		}
		if betterSeed(raw, seeds[i].url) {
			seeds[i].url = raw
		}
	}
	return seeds
}

func betterSeed(candidate, current string) bool {
	candWWW := strings.Contains(candidate, "://www.") || strings.HasPrefix(candidate, "www.")
	curWWW := strings.Contains(current, "://www.") || strings.HasPrefix(current, "www.")
	if candWWW != curWWW {
		return !candWWW
	}
	return len(candidate) < len(current)
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, eris.Wrapf(sc.Err(), "read %s", path)
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "file with one seed URL per line")
	rootCmd.AddCommand(runCmd)
}
