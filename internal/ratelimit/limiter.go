// Package ratelimit implements fixed-window request limiting keyed by
// client identity. All limiters attached to one Store share its entry map
// and clock, so a single sweep covers every window.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count       int
	windowStart time.Time
}

// Result reports the outcome of one admission check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Store holds counter state for any number of named limiters.
type Store struct {
	mu        sync.Mutex
	entries   map[string]*entry
	now       func() time.Time
	maxWindow time.Duration
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewStoreWithClock is meant for tests that need a controllable clock.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

// Limiter is a fixed-window limiter over a Store. The prefix isolates its
// keys from other limiters sharing the same store.
type Limiter struct {
	store  *Store
	prefix string
	window time.Duration
	limit  int
}

// NewLimiter registers a limiter on the store. Window and limit must be
// positive.
func (s *Store) NewLimiter(prefix string, window time.Duration, limit int) *Limiter {
	s.mu.Lock()
	if window > s.maxWindow {
		s.maxWindow = window
	}
	s.mu.Unlock()
	return &Limiter{
		store:  s,
		prefix: prefix,
		window: window,
		limit:  limit,
	}
}

// Allow records one request for key and reports whether it fits in the
// current window. The count is consumed even for denied requests; a denied
// request does not extend the window.
func (l *Limiter) Allow(key string) Result {
	fullKey := l.prefix + ":" + key
	now := l.store.now()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	e, ok := l.store.entries[fullKey]
	if !ok || now.Sub(e.windowStart) >= l.window {
		e = &entry{windowStart: now}
		l.store.entries[fullKey] = e
	}

	resetAt := e.windowStart.Add(l.window)
	if e.count >= l.limit {
		return Result{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			RetryAfter: resetAt.Sub(now),
			ResetAt:    resetAt,
		}
	}

	e.count++
	return Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - e.count,
		ResetAt:   resetAt,
	}
}

// Sweep evicts entries whose window started more than twice the largest
// registered window ago. Run it periodically; without it the map grows
// with every distinct client key ever seen.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := 2 * s.maxWindow
	if cutoff == 0 {
		return 0
	}
	evicted := 0
	for key, e := range s.entries {
		if now.Sub(e.windowStart) > cutoff {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live entries across all limiters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
