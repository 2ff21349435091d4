package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	idleBucketTTL = 10 * time.Minute
	sweepEvery    = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages one token bucket per client+ip
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perSecond requests per key with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      rate.Limit(perSecond),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastSweep) > sweepEvery {
		rl.sweep(now)
	}
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than idleBucketTTL. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idleBucketTTL {
			delete(rl.visitors, key)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// RateLimitMiddleware rejects with 429 once a client+ip exhausts its bucket.
// It must run after APIKeyAuth so the client name is known.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetClientFromContext(r.Context()) + ":" + clientIP(r)
			if !limiter.Allow(key) {
				w.Header().Set("Retry-After", "1")
				WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
