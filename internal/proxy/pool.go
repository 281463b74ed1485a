// Package proxy rotates the proxies browser sessions are started behind.
package proxy

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultCooldown is how long a failed proxy is skipped
const DefaultCooldown = 5 * time.Minute

// Pool hands out proxies round-robin, skipping the ones that recently failed
// to start a session
type Pool struct {
	mu       sync.Mutex
	proxies  []string
	next     int
	failed   map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

// NewPool validates and deduplicates proxies. An empty list gives a pool whose
// Next always returns "".
func NewPool(proxies []string, cooldown time.Duration) (*Pool, error) {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	p := &Pool{
		failed:   make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
	seen := make(map[string]bool, len(proxies))
	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[raw] {
			continue
		}
		if err := validate(raw); err != nil {
			return nil, err
		}
		seen[raw] = true
		p.proxies = append(p.proxies, raw)
	}
	return p, nil
}

// Len returns the number of distinct proxies
func (p *Pool) Len() int {
	return len(p.proxies)
}

// Next returns the next healthy proxy. When every proxy is cooling down, the
// one that failed longest ago is returned.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	now := p.now()
	oldest, oldestAt := "", time.Time{}
	for range p.proxies {
		proxy := p.proxies[p.next]
		p.next = (p.next + 1) % len(p.proxies)

		at, failed := p.failed[proxy]
		if !failed || now.Sub(at) >= p.cooldown {
			delete(p.failed, proxy)
			return proxy
		}
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = proxy, at
		}
	}
	return oldest
}

// MarkFailed puts proxy on cooldown
func (p *Pool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = p.now()
}

// MarkHealthy clears the cooldown of proxy
func (p *Pool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

func validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid proxy %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("invalid proxy %q: scheme must be http, https or socks5", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid proxy %q: missing host", raw)
	}
	return nil
}
