// Package ratelimit throttles form submissions per browser session.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Window is an in-memory sliding window counter keyed by string. It is not
// shared between processes.
type Window struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string][]time.Time
	now     func() time.Time
}

func NewWindow(limit int, window time.Duration) *Window {
	return &Window{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow records one hit for key if it fits within the window.
func (w *Window) Allow(key string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	hits := prune(w.buckets[key], now.Add(-w.window))
	if len(hits) >= w.limit {
		w.buckets[key] = hits
		return Result{Allowed: false, Limit: w.limit, Remaining: 0, ResetAt: hits[0].Add(w.window)}
	}

	hits = append(hits, now)
	w.buckets[key] = hits
	return Result{
		Allowed:   true,
		Limit:     w.limit,
		Remaining: w.limit - len(hits),
		ResetAt:   hits[0].Add(w.window),
	}
}

// Sweep drops keys with no hits inside the window.
func (w *Window) Sweep() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.window)
	removed := 0
	for key, hits := range w.buckets {
		if hits = prune(hits, cutoff); len(hits) == 0 {
			delete(w.buckets, key)
			removed++
			continue
		}
		w.buckets[key] = hits
	}
	return removed
}

// prune removes timestamps at or before cutoff. hits is ordered oldest first.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(hits); i++ {
		if hits[i].After(cutoff) {
			break
		}
	}
	return hits[i:]
}
