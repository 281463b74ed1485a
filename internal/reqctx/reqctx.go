// Package reqctx carries a per-search correlation ID through the crawl.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const crawlKey key = 0

// CrawlContext identifies one search request
type CrawlContext struct {
	CrawlID   string
	Term      string
	StartTime time.Time
}

// WithCrawl attaches a fresh CrawlContext for term
func WithCrawl(ctx context.Context, term string) context.Context {
	return context.WithValue(ctx, crawlKey, &CrawlContext{
		CrawlID:   generateID(),
		Term:      term,
		StartTime: time.Now(),
	})
}

// FromContext returns the CrawlContext of ctx, or a placeholder when none is set
func FromContext(ctx context.Context) *CrawlContext {
	if cc, ok := ctx.Value(crawlKey).(*CrawlContext); ok {
		return cc
	}
	return &CrawlContext{
		CrawlID:   "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the crawl ID and term
func Logger(ctx context.Context) zerolog.Logger {
	cc := FromContext(ctx)
	return log.With().
		Str("crawl_id", cc.CrawlID).
		Str("term", cc.Term).
		Logger()
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// CrawlError wraps an error with the crawl it happened in
type CrawlError struct {
	CrawlID string
	Err     error
}

// Error implements the error interface
func (e *CrawlError) Error() string {
	return fmt.Sprintf("[%s] %v", e.CrawlID, e.Err)
}

// Unwrap returns the underlying error
func (e *CrawlError) Unwrap() error {
	return e.Err
}

// Wrap tags err with the crawl ID of ctx. A nil err stays nil.
func Wrap(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &CrawlError{
		CrawlID: FromContext(ctx).CrawlID,
		Err:     err,
	}
}
