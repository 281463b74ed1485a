// internal/engine/static/session.go
package static

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/internal/engine"
)

// Session replays saved result pages instead of driving a browser. Page n of
// a search URL is served from the n-th snapshot; anything past the last
// snapshot behaves like a page whose results never appeared.
type Session struct {
	pages  []string
	doc    *goquery.Document
	closed bool
}

// New creates a Session over in-memory HTML pages
func New(pages ...string) *Session {
	return &Session{pages: pages}
}

// ReadPages reads the snapshot files. A missing file is reported like a
// browser that cannot start.
func ReadPages(paths ...string) ([]string, error) {
	pages := make([]string, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, engine.NewEngineError(engine.ErrCodeDriverInit, "failed to read snapshot", err).
				WithDetail("path", p)
		}
		pages = append(pages, string(b))
	}
	return pages, nil
}

// Opener returns an engine.Opener serving a fresh Session over the same pages
func Opener(pages ...string) engine.Opener {
	return func(ctx context.Context) (engine.Session, error) {
		return New(pages...), nil
	}
}

// Navigate parses the snapshot for the URL's page parameter
func (s *Session) Navigate(ctx context.Context, rawURL, readySelector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return engine.NewEngineError(engine.ErrCodeNavigation, "session is closed", engine.ErrNavigation)
	}

	n, err := pageNumber(rawURL)
	if err != nil {
		return engine.NewEngineError(engine.ErrCodeNavigation, "invalid page URL", err)
	}
	if n < 1 || n > len(s.pages) {
		return engine.NewEngineError(engine.ErrCodePageTimeout, "no snapshot for page", engine.ErrPageTimeout).
			WithDetail("page", n)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.pages[n-1]))
	if err != nil {
		return engine.NewEngineError(engine.ErrCodeNavigation, "failed to parse snapshot", err)
	}
	if readySelector != "" && doc.Find(readySelector).Length() == 0 {
		return engine.NewEngineError(engine.ErrCodePageTimeout, "ready selector never matched", engine.ErrPageTimeout).
			WithDetail("selector", readySelector).
			WithDetail("timeout", timeout.String())
	}

	s.doc = doc
	log.Debug().Str("url", rawURL).Int("page", n).Msg("Snapshot loaded")
	return nil
}

// DismissConsent removes the consent control from the snapshot if present
func (s *Session) DismissConsent(ctx context.Context, selector string, timeout time.Duration) {
	if s.doc == nil || selector == "" {
		return
	}
	if sel := s.doc.Find(selector); sel.Length() > 0 {
		sel.Remove()
		log.Debug().Str("selector", selector).Msg("Consent control dismissed")
	}
}

// QueryAll returns the matching nodes of the current snapshot
func (s *Session) QueryAll(ctx context.Context, selector string) ([]engine.Element, error) {
	if s.doc == nil {
		return nil, engine.NewEngineError(engine.ErrCodeNavigation, "no page loaded", engine.ErrNavigation)
	}
	var out []engine.Element
	s.doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
		out = append(out, NewElement(sel))
	})
	return out, nil
}

// Close drops the current document
func (s *Session) Close() error {
	s.closed = true
	s.doc = nil
	return nil
}

func pageNumber(rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, err
	}
	p := u.Query().Get("page")
	if p == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("page parameter %q: %w", p, err)
	}
	return n, nil
}
