// internal/engine/session.go
package engine

import (
	"context"
	"time"
)

// Session is one automated browser exclusively owned by a single crawl.
// It is never driven concurrently.
type Session interface {
	// Navigate loads url and blocks until readySelector is present or timeout elapses.
	// A timeout is reported as ErrPageTimeout.
	Navigate(ctx context.Context, url, readySelector string, timeout time.Duration) error

	// DismissConsent clicks the consent control if it shows up within timeout.
	// Absence is normal and nothing is reported.
	DismissConsent(ctx context.Context, selector string, timeout time.Duration)

	// QueryAll returns every element matching selector on the current page
	QueryAll(ctx context.Context, selector string) ([]Element, error)

	// Close releases the browser. Calls after the first are no-ops.
	Close() error
}

// Element is a handle on a DOM node of the current page
type Element interface {
	// Text returns the visible text, one line per rendered block
	Text(ctx context.Context) (string, error)

	// Query returns the first descendant matching selector; found is false when
	// nothing matches
	Query(ctx context.Context, selector string) (el Element, found bool, err error)

	// Attr returns the named attribute
	Attr(ctx context.Context, name string) (value string, ok bool, err error)
}

// Opener starts a new Session
type Opener func(ctx context.Context) (Session, error)
