package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// WindowLimiter allows at most limit hits per key within a sliding window.
type WindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
	now    func() time.Time
}

func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	l := &WindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		stop:   make(chan struct{}),
		now:    time.Now,
	}
	go l.sweep()
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *WindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	recent := prune(l.hits[key], now.Add(-l.window))
	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *WindowLimiter) Stop() { l.once.Do(func() { close(l.stop) }) }

// StopWhen stops the limiter once ctx is done.
func (l *WindowLimiter) StopWhen(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			l.Stop()
		case <-l.stop:
		}
	}()
}

func (l *WindowLimiter) sweep() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-tick.C:
			l.mu.Lock()
			cutoff := l.now().Add(-l.window)
			for k, times := range l.hits {
				if recent := prune(times, cutoff); len(recent) == 0 {
					delete(l.hits, k)
				} else {
					l.hits[k] = recent
				}
			}
			l.mu.Unlock()
		}
	}
}

// prune drops hits at or before cutoff; times is in ascending order.
func prune(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

// RateLimit limits requests per client IP and route.
func RateLimit(l *WindowLimiter) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(l.window.Seconds()))
	return func(c *gin.Context) {
		if !l.Allow(c.FullPath() + "|" + c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
