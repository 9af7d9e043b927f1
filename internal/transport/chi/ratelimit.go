package chi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// exemptPaths are routes that bypass rate limiting (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client address.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst.
// perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = max(perMinute/10, 1)
	}
	return &RateLimiter{
		clients: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// Middleware rejects over-budget requests with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := exemptPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}
		if !rl.get(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Sweep drops limiters idle longer than the TTL. Returns the number removed.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.idleTTL)
	removed := 0
	for k, e := range rl.clients {
		if e.lastSeen.Before(cutoff) {
			delete(rl.clients, k)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if e, ok := rl.clients[key]; ok {
		e.lastSeen = rl.now()
		return e.limiter
	}
	lim := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients[key] = &limiterEntry{limiter: lim, lastSeen: rl.now()}
	return lim
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
