package rate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// minIdleTTL bounds how long an unused bucket is kept.
const minIdleTTL = 10 * time.Minute

// KeyedLimiter keeps one token bucket per key (API client or remote address).
// Buckets idle for longer than idleTTL are dropped; by then they have refilled,
// so a fresh bucket behaves the same.
type KeyedLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*keyedEntry
	rate        rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(rps float64, burst int) *KeyedLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	idleTTL := time.Duration(float64(burst) / rps * float64(time.Second))
	if idleTTL < minIdleTTL {
		idleTTL = minIdleTTL
	}
	return &KeyedLimiter{
		limiters:    make(map[string]*keyedEntry),
		rate:        rate.Limit(rps),
		burst:       burst,
		idleTTL:     idleTTL,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow takes a token for key without waiting.
func (l *KeyedLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	return l.getLimiter(key).Allow()
}

// Wait blocks until key has a token or ctx is done.
func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	return l.getLimiter(key).Wait(ctx)
}

// Len reports how many keys are tracked.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeCleanup(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &keyedEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *KeyedLimiter) maybeCleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleTTL {
		return
	}
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastCleanup = now
}
