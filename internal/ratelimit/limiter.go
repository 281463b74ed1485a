// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter paces page loads per host
type RateLimiter interface {
	// Wait blocks until a load of urlStr may start or ctx is done
	Wait(ctx context.Context, urlStr string) error
}

// DomainLimiter keeps one token bucket per host. Concurrent crawls of the same
// board share a bucket, so a batch never loads pages faster than a single crawl
// would be allowed to.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

// NewDomainLimiter allows one page load per interval and host, with burst
// loads admitted back to back. A non-positive interval disables pacing.
func NewDomainLimiter(interval time.Duration, burst int) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst <= 0 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    limit,
		burst:    burst,
	}
}

// Wait blocks until the host of urlStr has a token. URLs without a host are
// never delayed.
func (dl *DomainLimiter) Wait(ctx context.Context, urlStr string) error {
	host := hostOf(urlStr)
	if host == "" {
		return ctx.Err()
	}
	return dl.limiter(host).Wait(ctx)
}

func (dl *DomainLimiter) limiter(host string) *rate.Limiter {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	lim, ok := dl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(dl.every, dl.burst)
		dl.limiters[host] = lim
	}
	return lim
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
