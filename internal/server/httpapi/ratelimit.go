package httpapi

import (
	"net"
	"net/http"

	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/gateway"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// DefaultLimiterCapacity bounds how many client addresses are tracked.
const DefaultLimiterCapacity = 4096

// RateLimiter applies a token bucket per client IP. The least recently seen
// clients are evicted once capacity is reached.
type RateLimiter struct {
	limiters *lru.Cache
	rate     rate.Limit
	burst    int
	logger   logging.Logger
	metrics  *Metrics
}

func NewRateLimiter(requestsPerSecond float64, burst int, capacity int, logger logging.Logger, metrics *Metrics) (*RateLimiter, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		limiters: cache,
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.rate, rl.burst)
	if prev, ok, _ := rl.limiters.PeekOrAdd(key, l); ok {
		return prev.(*rate.Limiter)
	}
	return l
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.getLimiter(key).Allow() {
			rl.logger.Warn(r.Context(), "rate limit exceeded", "client", key, "path", r.URL.Path)
			if rl.metrics != nil {
				rl.metrics.limited.Inc()
			}
			writeJSON(w, http.StatusTooManyRequests, gateway.TooManyRequests())
			return
		}
		next.ServeHTTP(w, r)
	})
}
