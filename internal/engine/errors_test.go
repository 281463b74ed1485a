package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEngineError_Is(t *testing.T) {
	err := NewEngineError(ErrCodePageTimeout, "results page did not become ready", context.DeadlineExceeded).
		WithDetail("url", "https://example.com")

	if !errors.Is(err, ErrPageTimeout) {
		t.Error("expected code sentinel to match")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected underlying error to match")
	}
	if !errors.Is(err, &EngineError{Code: ErrCodePageTimeout}) {
		t.Error("expected match by code")
	}
	if errors.Is(err, ErrNavigation) {
		t.Error("unexpected match with another sentinel")
	}

	wrapped := fmt.Errorf("page 2: %w", err)
	var ee *EngineError
	if !errors.As(wrapped, &ee) || ee.Details["url"] != "https://example.com" {
		t.Errorf("expected EngineError with details, got %v", wrapped)
	}
}

func TestEngineError_Message(t *testing.T) {
	err := NewEngineError(ErrCodeNavigation, "navigation failed", nil)
	if got := err.Error(); got != "NAVIGATION: navigation failed" {
		t.Errorf("unexpected message %q", got)
	}
	err = NewEngineError(ErrCodeExtract, "element lookup failed", errors.New("gone"))
	if got := err.Error(); got != "EXTRACT: element lookup failed: gone" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, ErrStaleElement) {
		t.Error("extract errors should match ErrStaleElement")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(fmt.Errorf("open: %w", NewEngineError(ErrCodeDriverInit, "failed to start browser", nil))) {
		t.Error("driver init must be fatal")
	}
	if IsFatal(NewEngineError(ErrCodePageTimeout, "timeout", nil)) {
		t.Error("page timeout must not be fatal")
	}
	if IsFatal(nil) {
		t.Error("nil must not be fatal")
	}
}
