// Package crawl drives the page-by-page search loop.
package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/stageradar/internal/engine"
	"github.com/law-makers/stageradar/internal/extract"
	"github.com/law-makers/stageradar/internal/reqctx"
	"github.com/law-makers/stageradar/pkg/models"
)

// Options configures a Controller
type Options struct {
	BaseURL            string
	Country            string
	ResultSelector     string
	ReadySelector      string
	ConsentSelector    string
	NavigationTimeout  time.Duration
	ConsentTimeout     time.Duration
	PageDelay          time.Duration
	MaxListingsPerPage int
	// Dedupe drops listings whose link was already collected in this run
	Dedupe bool
	// OnPage is called after every page that reached extraction
	OnPage func(PageStats)
}

// PageStats summarizes one extracted page
type PageStats struct {
	Page       int
	Containers int
	Added      int
	Skipped    int
	Total      int
}

// Result is what one crawl collected
type Result struct {
	Listings []models.RawListing
	Pages    int
	Stop     models.StopReason
	Skipped  int
	// Err explains a stop caused by a failure; nil for normal termination
	Err error
}

// Controller runs one search at a time against its own Session
type Controller struct {
	opts      Options
	open      engine.Opener
	extractor *extract.Extractor
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a Controller. Zero options take the board defaults.
func New(opts Options, open engine.Opener, extractor *extract.Extractor) *Controller {
	if opts.ResultSelector == "" {
		opts.ResultSelector = "li[data-testid='search-results-list-item-wrapper']"
	}
	if opts.ReadySelector == "" {
		opts.ReadySelector = opts.ResultSelector
	}
	if opts.ConsentSelector == "" {
		opts.ConsentSelector = "#axeptio_btn_acceptAll"
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 15 * time.Second
	}
	if opts.ConsentTimeout <= 0 {
		opts.ConsentTimeout = 5 * time.Second
	}
	if opts.MaxListingsPerPage <= 0 {
		opts.MaxListingsPerPage = 30
	}
	if extractor == nil {
		extractor = extract.New(extract.Selectors{})
	}
	return &Controller{
		opts:      opts,
		open:      open,
		extractor: extractor,
		sleep:     sleepContext,
	}
}

// Run crawls result pages for req until a page yields no containers or no new
// listings. Only a session that cannot be opened is returned as an error; every
// other failure ends the loop and keeps what was collected so far.
func (c *Controller) Run(ctx context.Context, req models.SearchRequest) (*Result, error) {
	logger := reqctx.Logger(ctx)

	if err := ctx.Err(); err != nil {
		return c.stop(logger, &Result{}, models.StopCancelled, err), nil
	}

	session, err := c.open(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open browser session")
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Error closing browser session")
		}
	}()

	res := &Result{}
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return c.stop(logger, res, models.StopCancelled, err), nil
		}

		pageURL := BuildPageURL(c.opts.BaseURL, c.opts.Country, req.Contract, req.Term, page)
		res.Pages = page
		plog := logger.With().Int("page", page).Logger()
		plog.Info().Str("url", pageURL).Msg("Loading results page")

		if err := session.Navigate(ctx, pageURL, c.opts.ReadySelector, c.opts.NavigationTimeout); err != nil {
			return c.stop(plog, res, classify(ctx, err), err), nil
		}

		session.DismissConsent(ctx, c.opts.ConsentSelector, c.opts.ConsentTimeout)

		containers, err := session.QueryAll(ctx, c.opts.ResultSelector)
		if err != nil {
			return c.stop(plog, res, classify(ctx, err), err), nil
		}
		if len(containers) == 0 {
			c.report(PageStats{Page: page, Total: len(res.Listings)})
			return c.stop(plog, res, models.StopNoListings, nil), nil
		}
		if len(containers) > c.opts.MaxListingsPerPage {
			containers = containers[:c.opts.MaxListingsPerPage]
		}

		before := len(res.Listings)
		listings, skipped := c.extractor.Extract(ctx, pageURL, containers)
		for _, l := range listings {
			if c.opts.Dedupe && l.Link != models.LinkUnavailable {
				if _, dup := seen[l.Link]; dup {
					continue
				}
				seen[l.Link] = struct{}{}
			}
			res.Listings = append(res.Listings, l)
		}
		res.Skipped += len(skipped)

		stats := PageStats{
			Page:       page,
			Containers: len(containers),
			Added:      len(res.Listings) - before,
			Skipped:    len(skipped),
			Total:      len(res.Listings),
		}
		c.report(stats)
		plog.Debug().
			Int("containers", stats.Containers).
			Int("added", stats.Added).
			Int("skipped", stats.Skipped).
			Int("total", stats.Total).
			Msg("Page extracted")

		if len(res.Listings) == before {
			return c.stop(plog, res, models.StopStagnation, nil), nil
		}

		if err := c.sleep(ctx, c.opts.PageDelay); err != nil {
			return c.stop(plog, res, models.StopCancelled, err), nil
		}
	}
}

func (c *Controller) stop(logger zerolog.Logger, res *Result, reason models.StopReason, err error) *Result {
	res.Stop = reason
	res.Err = err

	ev := logger.Info()
	if err != nil {
		ev = logger.Warn().Err(err)
	}
	ev.Str("reason", string(reason)).
		Int("listings", len(res.Listings)).
		Msg("Crawl stopped")
	return res
}

func (c *Controller) report(stats PageStats) {
	if c.opts.OnPage != nil {
		c.opts.OnPage(stats)
	}
}

func classify(ctx context.Context, err error) models.StopReason {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return models.StopCancelled
	case errors.Is(err, engine.ErrPageTimeout):
		return models.StopPageTimeout
	default:
		return models.StopNavigationFailed
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
