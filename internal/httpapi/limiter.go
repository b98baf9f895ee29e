package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter rate-limits per client key (user id, else remote IP).
type KeyedLimiter struct {
	mu   sync.Mutex
	m    map[string]*keyedEntry
	r    rate.Limit
	b    int
	idle time.Duration
}

type keyedEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewKeyedLimiter allows reqPerSec per key with bursts of burst.
func NewKeyedLimiter(reqPerSec float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		m:    make(map[string]*keyedEntry),
		r:    rate.Limit(reqPerSec),
		b:    burst,
		idle: 10 * time.Minute,
	}
}

// Allow reports whether key may proceed now. Limiters idle for a while are
// dropped on the way so the map does not grow without bound.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := time.Now()
	e, ok := kl.m[key]
	if !ok {
		if len(kl.m) > 1024 {
			for k, v := range kl.m {
				if now.Sub(v.seen) > kl.idle {
					delete(kl.m, k)
				}
			}
		}
		e = &keyedEntry{lim: rate.NewLimiter(kl.r, kl.b)}
		kl.m[key] = e
	}
	e.seen = now
	return e.lim.AllowN(now, 1)
}

// Middleware answers 429 once a client exceeds its budget.
func (kl *KeyedLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !kl.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many uploads, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if id := r.Header.Get("x-user-id"); id != "" {
		return "user:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
