package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRateLimitIdleTTL is how long a client's bucket is kept after its
// last request.
const DefaultRateLimitIdleTTL = 3 * time.Minute

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RPS is the sustained requests per second per client (default: 5).
	RPS float64

	// Burst is the bucket size per client (default: 10).
	Burst int

	// IdleTTL is how long an idle client's bucket is kept
	// (default: DefaultRateLimitIdleTTL).
	IdleTTL time.Duration

	// KeyFunc extracts the client key. Default: remote IP.
	KeyFunc func(r *http.Request) string
}

// limiterPool hands out one token bucket per client key. Buckets idle for
// longer than IdleTTL are swept once they have refilled, so dropping them
// loses no state.
type limiterPool struct {
	mu        sync.Mutex
	m         map[string]*clientLimiter
	cfg       RateLimitConfig
	now       func() time.Time
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(cfg RateLimitConfig) *limiterPool {
	return &limiterPool{
		m:   make(map[string]*clientLimiter),
		cfg: cfg,
		now: time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (p *limiterPool) Allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) >= p.cfg.IdleTTL {
		p.sweep(now)
	}

	c, ok := p.m[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(p.cfg.RPS), p.cfg.Burst)}
		p.m[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep drops idle buckets that are full again. Callers hold p.mu.
func (p *limiterPool) sweep(now time.Time) {
	p.lastSweep = now
	for key, c := range p.m {
		if now.Sub(c.lastSeen) < p.cfg.IdleTTL {
			continue
		}
		if c.limiter.TokensAt(now) < float64(p.cfg.Burst) {
			continue
		}
		delete(p.m, key)
	}
}

// Len returns the number of tracked clients.
func (p *limiterPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// RateLimit rejects requests over the per-client rate with 429.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultRateLimitIdleTTL
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteIP
	}
	pool := newLimiterPool(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.Allow(cfg.KeyFunc(r)) {
				http.Error(w, "429 Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// remoteIP returns the host part of r.RemoteAddr. chi's RealIP middleware,
// when mounted earlier, has already replaced it with the forwarded address.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
