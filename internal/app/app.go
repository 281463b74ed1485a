// Package app wires configuration, browser sessions and the crawl pipeline together.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/internal/config"
	"github.com/law-makers/stageradar/internal/crawl"
	"github.com/law-makers/stageradar/internal/engine"
	"github.com/law-makers/stageradar/internal/engine/batch"
	"github.com/law-makers/stageradar/internal/engine/dynamic"
	"github.com/law-makers/stageradar/internal/export"
	"github.com/law-makers/stageradar/internal/extract"
	"github.com/law-makers/stageradar/internal/normalize"
	"github.com/law-makers/stageradar/internal/proxy"
	"github.com/law-makers/stageradar/internal/ratelimit"
	"github.com/law-makers/stageradar/internal/reqctx"
	"github.com/law-makers/stageradar/internal/utils/headers"
	"github.com/law-makers/stageradar/pkg/models"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	Proxies     *proxy.Pool
	Headers     map[string]string
	Extractor   *extract.Extractor

	// open starts the session of each search; nil means a fresh Chrome
	open      engine.Opener
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the per-host navigation limiter shared by all searches
//   - Builds the proxy rotation pool and the extra header set
//   - Creates the listing extractor from the configured selectors
//
// No browser is started here; each search opens its own.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := ConfigureLogging(cfg)

	limiter := ratelimit.NewDomainLimiter(cfg.NavigateInterval(), cfg.NavigateBurst)
	logger.Debug().
		Float64("navigate_rps", cfg.NavigateRPS).
		Int("navigate_burst", cfg.NavigateBurst).
		Msg("Rate limiter initialized")

	pool, err := proxy.NewPool(cfg.Proxies, cfg.ProxyCooldown)
	if err != nil {
		return nil, err
	}
	hdrs, err := headers.Parse(cfg.Headers)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: limiter,
		Proxies:     pool,
		Headers:     hdrs,
		Extractor: extract.New(extract.Selectors{
			Anchor:   cfg.Selectors.Anchor,
			Location: cfg.Selectors.Location,
		}),
		startTime: time.Now(),
	}

	logger.Debug().
		Int("proxies", pool.Len()).
		Int("headers", len(hdrs)).
		Msg("Application initialized")
	return app, nil
}

// ConfigureLogging sets the global zerolog level and writer. Info messages are
// only shown with verbose logging, like warnings are only hidden by quiet.
func ConfigureLogging(cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	switch cfg.LogLevel {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "error":
		level = zerolog.ErrorLevel
	case "disabled":
		level = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer
	if cfg.JSONLog {
		w = os.Stderr
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	logger := log.Logger
	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return logger
}

// WithOpener returns a copy of a whose searches use open instead of Chrome
func (a *Application) WithOpener(open engine.Opener) *Application {
	cp := *a
	cp.open = open
	return &cp
}

// OpenBrowser starts a Chrome session behind the next proxy of the pool. A
// proxy the browser cannot start through is put on cooldown.
func (a *Application) OpenBrowser(ctx context.Context) (engine.Session, error) {
	proxyURL := a.Proxies.Next()
	s, err := dynamic.Open(ctx, dynamic.Options{
		Headless:    a.Config.Headless,
		ChromePath:  a.Config.ChromePath,
		UserAgent:   a.Config.UserAgent,
		Proxy:       proxyURL,
		Headers:     a.Headers,
		ItemTimeout: a.Config.ItemTimeout,
		Limiter:     a.RateLimiter,
		Evasion:     dynamic.DefaultEvasion(),
	})
	if err != nil {
		if proxyURL != "" {
			a.Proxies.MarkFailed(proxyURL)
			log.Warn().Err(err).Str("proxy", proxyURL).Msg("Proxy marked as failed")
		}
		return nil, err
	}
	if proxyURL != "" {
		a.Proxies.MarkHealthy(proxyURL)
	}
	return s, nil
}

// Controller builds a crawl controller from the configuration
func (a *Application) Controller(onPage func(crawl.PageStats)) *crawl.Controller {
	open := a.open
	if open == nil {
		open = a.OpenBrowser
	}
	cfg := a.Config
	return crawl.New(crawl.Options{
		BaseURL:            cfg.BaseURL,
		Country:            cfg.Country,
		ResultSelector:     cfg.Selectors.Result,
		ReadySelector:      cfg.Selectors.Ready,
		ConsentSelector:    cfg.Selectors.Consent,
		NavigationTimeout:  cfg.NavigationTimeout,
		ConsentTimeout:     cfg.ConsentTimeout,
		PageDelay:          cfg.PageDelay,
		MaxListingsPerPage: cfg.MaxListingsPerPage,
		Dedupe:             cfg.Dedupe,
		OnPage:             onPage,
	}, open, a.Extractor)
}

// Search runs one complete search. It satisfies batch.Searcher.
func (a *Application) Search(ctx context.Context, req models.SearchRequest) *models.SearchResult {
	return a.SearchWithProgress(ctx, req, nil)
}

// SearchWithProgress runs one search, reporting every extracted page to onPage.
//
// Zero results and a failed crawl are kept apart: a crawl that failed before
// collecting anything is OutcomeError, a crawl that ended normally or with
// partial results is OutcomeResults or OutcomeNoResults.
func (a *Application) SearchWithProgress(ctx context.Context, req models.SearchRequest, onPage func(crawl.PageStats)) *models.SearchResult {
	start := time.Now()
	ctx = reqctx.WithCrawl(ctx, req.Term)
	logger := reqctx.Logger(ctx)

	if req.Contract == "" {
		req.Contract, _ = models.ParseContractType(a.Config.Contract)
	}
	res := &models.SearchResult{Request: req}
	defer func() { res.Duration = time.Since(start) }()

	logger.Info().
		Str("location", req.LocationFilter).
		Str("contract", string(req.Contract)).
		Msg("Search started")

	out, err := a.Controller(onPage).Run(ctx, req)
	if err != nil {
		res.Table = normalize.Normalize(nil, "")
		res.Outcome = models.OutcomeError
		res.Err = reqctx.Wrap(ctx, err)
		return res
	}

	res.Pages = out.Pages
	res.Stop = out.Stop
	res.Skipped = out.Skipped
	res.Err = reqctx.Wrap(ctx, out.Err)
	res.Table = normalize.Normalize(out.Listings, req.LocationFilter)

	switch {
	case out.Err != nil && len(out.Listings) == 0:
		res.Outcome = models.OutcomeError
	case res.Table.Len() == 0:
		res.Outcome = models.OutcomeNoResults
	default:
		res.Outcome = models.OutcomeResults
	}

	logger.Info().
		Str("outcome", string(res.Outcome)).
		Str("stop", string(res.Stop)).
		Int("pages", res.Pages).
		Int("listings", len(out.Listings)).
		Int("rows", res.Table.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Search finished")
	return res
}

// SearchAll runs several searches concurrently; results follow the input order
func (a *Application) SearchAll(ctx context.Context, requests []models.SearchRequest) ([]*models.SearchResult, error) {
	return batch.New(a, a.Config.Concurrency).Run(ctx, requests)
}

// Export writes table to path, or to the configured output when path is empty
func (a *Application) Export(table *models.Table, path string) (*export.Artifact, error) {
	if path == "" {
		path = a.Config.Output
	}
	return export.WriteFile(table, path)
}

// Close releases what the application holds. Browser sessions are owned and
// closed by their searches, so nothing here can block.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
