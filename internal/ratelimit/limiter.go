package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether a keyed caller may proceed. Implementations are
// injected so a single-instance deployment can stay in-memory while a
// multi-instance one shares a Redis window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type window struct {
	start time.Time
	count int
}

// FixedWindow is an in-memory fixed-window counter. Counters reset at the
// window boundary and are lost on process restart, which is acceptable for
// abuse throttling of anonymous endpoints.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*window
	now     func() time.Time
}

// NewFixedWindow creates a limiter allowing limit requests per key per window.
func NewFixedWindow(limit int, windowSize time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		window:  windowSize,
		buckets: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *FixedWindow) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		l.buckets[key] = &window{start: now, count: 1}
		l.sweep(now)
		return true
	}
	if b.count < l.limit {
		b.count++
		return true
	}
	return false
}

// sweep drops stale buckets; called opportunistically under the lock so no
// background goroutine is needed.
func (l *FixedWindow) sweep(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.start) >= l.window {
			delete(l.buckets, k)
		}
	}
}
