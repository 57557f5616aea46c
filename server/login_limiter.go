package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type deviceLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login submissions per device.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*deviceLimiter
	rate     rate.Limit
	burst    int
	nowTime  func() time.Time
}

func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	if burst < 1 {
		burst = 1
	}
	return &LoginLimiter{
		limiters: make(map[string]*deviceLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		nowTime:  time.Now,
	}
}

// Allow spends one token of the device's budget, reporting false when the
// budget is exhausted.
func (l *LoginLimiter) Allow(deviceID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowTime()
	entry, ok := l.limiters[deviceID]
	if !ok {
		entry = &deviceLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[deviceID] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Prune forgets devices not seen since before.
func (l *LoginLimiter) Prune(before time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, entry := range l.limiters {
		if entry.lastSeen.Before(before) {
			delete(l.limiters, id)
		}
	}
}

func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
