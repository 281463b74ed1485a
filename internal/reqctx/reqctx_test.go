package reqctx

import (
	"context"
	"errors"
	"testing"
)

func TestWithCrawl(t *testing.T) {
	ctx := WithCrawl(context.Background(), "data")
	cc := FromContext(ctx)

	if cc.Term != "data" {
		t.Errorf("expected term data, got %q", cc.Term)
	}
	if len(cc.CrawlID) != 16 {
		t.Errorf("expected 16 hex chars, got %q", cc.CrawlID)
	}
	if other := FromContext(WithCrawl(context.Background(), "data")); other.CrawlID == cc.CrawlID {
		t.Error("crawl IDs should differ")
	}
}

func TestFromContext_Missing(t *testing.T) {
	if id := FromContext(context.Background()).CrawlID; id != "unknown" {
		t.Errorf("expected placeholder ID, got %q", id)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(context.Background(), nil) != nil {
		t.Fatal("nil error must stay nil")
	}

	base := errors.New("navigation failed")
	ctx := WithCrawl(context.Background(), "data")
	err := Wrap(ctx, base)

	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
	var ce *CrawlError
	if !errors.As(err, &ce) || ce.CrawlID != FromContext(ctx).CrawlID {
		t.Errorf("expected CrawlError with crawl ID, got %v", err)
	}
}
