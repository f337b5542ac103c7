// Package ratelimit provides the per-user cooldown gate in front of the
// assistant. The table is process-local: with multiple instances a user can
// land on different hosts within one window. That is an accepted property
// of the deployment, not something this package tries to solve.
package ratelimit

import (
	"sync"
	"time"
)

// CooldownLimiter tracks the last accepted request per user and rejects
// requests arriving inside the cooldown window. Check and set happen under
// one lock, so concurrent requests from the same user cannot both pass.
type CooldownLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	lastSeen map[string]time.Time
	now      func() time.Time
}

func NewCooldownLimiter(window time.Duration) *CooldownLimiter {
	return &CooldownLimiter{
		window:   window,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether a request from uid may proceed. An accepted request
// records its timestamp; a rejected one leaves the table untouched, so the
// window is measured from the last accepted request.
func (l *CooldownLimiter) Allow(uid string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastSeen[uid]; ok && now.Sub(last) < l.window {
		return false
	}
	l.lastSeen[uid] = now
	return true
}

// Sweep drops entries older than the window so the table stays bounded.
// Expired entries carry no information: a user outside the window would be
// admitted anyway.
func (l *CooldownLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for uid, last := range l.lastSeen {
		if last.Before(cutoff) {
			delete(l.lastSeen, uid)
		}
	}
}

// StartSweeper sweeps on the given interval until stop is closed.
func (l *CooldownLimiter) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

func (l *CooldownLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastSeen)
}
