// internal/engine/dynamic/session.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/internal/engine"
	"github.com/law-makers/stageradar/internal/ratelimit"
)

const (
	defaultItemTimeout = 2 * time.Second
	consentSettle      = time.Second
	defaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Options configures a Chrome session
type Options struct {
	Headless   bool
	ChromePath string
	UserAgent  string
	// Proxy is passed to Chrome as --proxy-server
	Proxy   string
	Headers map[string]string
	// ItemTimeout bounds every per-element call
	ItemTimeout time.Duration
	// Limiter paces navigations; nil disables pacing
	Limiter ratelimit.RateLimiter
	Evasion Evasion
}

// Session drives one Chrome tab
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	limiter     ratelimit.RateLimiter
	itemTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Open starts Chrome and applies the evasion settings. The browser lives until
// Close is called or ctx is cancelled.
func Open(ctx context.Context, opts Options) (*Session, error) {
	start := time.Now()
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = defaultItemTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Evasion.Width == 0 || opts.Evasion.Height == 0 {
		opts.Evasion = DefaultEvasion()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Debug().Msgf(format, args...)
		}),
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			log.Debug().Str("source", "cdp").Msgf(format, args...)
		}),
	)

	// the first Run launches the browser
	if err := chromedp.Run(browserCtx, evasionTasks(opts)); err != nil {
		cancel()
		allocCancel()
		return nil, engine.NewEngineError(engine.ErrCodeDriverInit, "failed to start browser", err).
			WithDetail("headless", fmt.Sprint(opts.Headless)).
			WithDetail("proxy", opts.Proxy)
	}

	log.Debug().
		Bool("headless", opts.Headless).
		Bool("proxy", opts.Proxy != "").
		Dur("startup", time.Since(start)).
		Msg("Browser session opened")

	return &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		limiter:     opts.Limiter,
		itemTimeout: opts.ItemTimeout,
	}, nil
}

// Opener returns an engine.Opener starting a fresh browser per crawl
func Opener(opts Options) engine.Opener {
	return func(ctx context.Context) (engine.Session, error) {
		return Open(ctx, opts)
	}
}

// Navigate loads url and waits for readySelector to be ready
func (s *Session) Navigate(ctx context.Context, url, readySelector string, timeout time.Duration) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, url); err != nil {
			return err
		}
	}

	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()

	tasks := chromedp.Tasks{chromedp.Navigate(url)}
	if readySelector != "" {
		tasks = append(tasks, chromedp.WaitReady(readySelector, chromedp.ByQuery))
	}

	err := chromedp.Run(runCtx, tasks)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return engine.NewEngineError(engine.ErrCodePageTimeout, "results page did not become ready", err).
			WithDetail("url", url).
			WithDetail("selector", readySelector)
	default:
		return engine.NewEngineError(engine.ErrCodeNavigation, "navigation failed", err).
			WithDetail("url", url)
	}
}

// DismissConsent clicks selector if it becomes visible within timeout, then
// lets the banner animate away
func (s *Session) DismissConsent(ctx context.Context, selector string, timeout time.Duration) {
	if selector == "" {
		return
	}
	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		log.Debug().Err(err).Str("selector", selector).Msg("No consent banner")
		return
	}
	log.Debug().Str("selector", selector).Msg("Consent banner dismissed")

	t := time.NewTimer(consentSettle)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// QueryAll returns the nodes matching selector without waiting for them
func (s *Session) QueryAll(ctx context.Context, selector string) ([]engine.Element, error) {
	runCtx, cancel := s.bind(ctx, s.itemTimeout)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(runCtx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, engine.NewEngineError(engine.ErrCodeNavigation, "query failed", err).
			WithDetail("selector", selector)
	}

	out := make([]engine.Element, len(nodes))
	for i, n := range nodes {
		out[i] = &Element{s: s, node: n}
	}
	return out, nil
}

// Close shuts the browser down. Only the first call does anything.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		err := chromedp.Cancel(s.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
		s.cancel()
		s.allocCancel()
		log.Debug().Msg("Browser session closed")
	})
	return s.closeErr
}

// bind derives a context from the browser that also ends when ctx does
func (s *Session) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}
