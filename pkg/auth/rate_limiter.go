package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter decides whether a keyed request may proceed
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// TokenBucketLimiter refills every bucket to capacity over one window.
// Buckets untouched for an hour are swept by a background goroutine until
// Close is called.
type TokenBucketLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	perSec   float64
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewTokenBucketLimiter allows capacity requests per window per key
func NewTokenBucketLimiter(capacity int, window time.Duration) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(capacity),
		perSec:   float64(capacity) / window.Seconds(),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go l.sweep(5 * time.Minute)
	return l
}

// Allow consumes a token for key if one is available
func (l *TokenBucketLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens = min(l.capacity, b.tokens+elapsed*l.perSec)
	b.lastSeen = now

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// Reset forgets the bucket for key
func (l *TokenBucketLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

// Close stops the sweeper
func (l *TokenBucketLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *TokenBucketLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-time.Hour)
			for key, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// KeyedLimiter namespaces a limiter, e.g. "ip:" or "user:"
type KeyedLimiter struct {
	prefix  string
	limit   int
	limiter *TokenBucketLimiter
}

// NewIPRateLimiter limits requests per client address per minute
func NewIPRateLimiter(requestsPerMinute int) *KeyedLimiter {
	return &KeyedLimiter{prefix: "ip:", limit: requestsPerMinute, limiter: NewTokenBucketLimiter(requestsPerMinute, time.Minute)}
}

// NewUserRateLimiter limits requests per subject per minute
func NewUserRateLimiter(requestsPerMinute int) *KeyedLimiter {
	return &KeyedLimiter{prefix: "user:", limit: requestsPerMinute, limiter: NewTokenBucketLimiter(requestsPerMinute, time.Minute)}
}

// Allow checks key under this limiter's namespace
func (l *KeyedLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.limiter.Allow(ctx, l.prefix+key)
}

// Reset forgets key under this limiter's namespace
func (l *KeyedLimiter) Reset(ctx context.Context, key string) error {
	return l.limiter.Reset(ctx, l.prefix+key)
}

// Limit is the configured requests per minute
func (l *KeyedLimiter) Limit() int {
	return l.limit
}

// Close stops the underlying sweeper
func (l *KeyedLimiter) Close() {
	l.limiter.Close()
}

var (
	_ RateLimiter = (*TokenBucketLimiter)(nil)
	_ RateLimiter = (*KeyedLimiter)(nil)
)
