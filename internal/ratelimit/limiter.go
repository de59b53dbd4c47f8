// Package ratelimit implements fixed-window request counting keyed by a
// caller-supplied client identifier. Counters are process-local; the Limiter
// interface allows substituting a shared store for multi-instance deployments
// without changing callers.
package ratelimit

import (
	"sync"
	"time"
)

// Config defines one rate-limit tier.
type Config struct {
	Max    int           // requests allowed per window
	Window time.Duration // window length
}

// Limiter decides whether a request identified by key may proceed.
// When the request is rejected, RetryAfter reports how long until the
// current window elapses.
type Limiter interface {
	Allow(key string) (allowed bool, retryAfter time.Duration)
}

type windowEntry struct {
	windowStart time.Time
	count       int
}

// FixedWindow is an in-memory Limiter counting requests per key in
// non-overlapping windows of cfg.Window length.
type FixedWindow struct {
	cfg Config

	mu          sync.Mutex
	entries     map[string]windowEntry
	lastCleanup time.Time

	now func() time.Time // injectable clock for tests
}

var _ Limiter = (*FixedWindow)(nil)

func NewFixedWindow(cfg Config) *FixedWindow {
	return &FixedWindow{
		cfg:         cfg,
		entries:     make(map[string]windowEntry),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow records one request for key and reports whether it fits in the
// current window. The count is incremented and checked under one lock so
// concurrent bursts cannot undercount.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeCleanup(now)

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.cfg.Window {
		l.entries[key] = windowEntry{windowStart: now, count: 1}
		return true, 0
	}
	if entry.count >= l.cfg.Max {
		retryAfter := entry.windowStart.Add(l.cfg.Window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter
	}
	entry.count++
	l.entries[key] = entry
	return true, 0
}

const cleanupInterval = 5 * time.Minute

// maybeCleanup drops entries whose window has elapsed so ephemeral client
// keys do not accumulate forever. Called with l.mu held.
func (l *FixedWindow) maybeCleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < cleanupInterval {
		return
	}
	l.lastCleanup = now
	for key, entry := range l.entries {
		if now.Sub(entry.windowStart) >= l.cfg.Window {
			delete(l.entries, key)
		}
	}
}
