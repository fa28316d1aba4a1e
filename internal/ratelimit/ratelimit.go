package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum delay between consecutive requests to the same
// upstream host. The availability checker shares one instance across a batch
// so its sequential lookups stay rate-limit friendly.
type Limiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: upstream host name
	minDelay time.Duration
}

// New creates a limiter that enforces minDelay between consecutive requests
// to the same host.
func New(minDelay time.Duration) *Limiter {
	return &Limiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to host.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	last, ok := l.lastCall[host]
	now := time.Now()

	if !ok {
		// First request for this host, no wait needed.
		l.lastCall[host] = now
		l.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= l.minDelay {
		l.lastCall[host] = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minDelay - elapsed
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", host, ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastCall[host] = time.Now()
	l.mu.Unlock()

	return nil
}
