// internal/engine/batch/runner.go
package batch

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/law-makers/stageradar/internal/engine"
	"github.com/law-makers/stageradar/pkg/models"
)

// Searcher runs one complete search. It must always return a result; failures
// are carried in SearchResult.Err.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) *models.SearchResult
}

// Runner runs several searches concurrently, each with its own browser session
type Runner struct {
	searcher    Searcher
	concurrency int
}

// New creates a Runner. If concurrency <= 0, it is derived from the machine.
func New(searcher Searcher, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}
	return &Runner{
		searcher:    searcher,
		concurrency: concurrency,
	}
}

// Run executes requests and returns their results in input order. A fatal
// error, such as a browser that cannot start, cancels the searches not yet
// finished and is returned alongside the results.
func (r *Runner) Run(ctx context.Context, requests []models.SearchRequest) ([]*models.SearchResult, error) {
	results := make([]*models.SearchResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	log.Debug().
		Int("searches", len(requests)).
		Int("concurrency", r.concurrency).
		Msg("Starting batch")

	for i, req := range requests {
		g.Go(func() error {
			res := r.searcher.Search(gctx, req)
			if res == nil {
				res = &models.SearchResult{Request: req, Outcome: models.OutcomeError}
			}
			results[i] = res
			if engine.IsFatal(res.Err) {
				return res.Err
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
