package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/response"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool
	// Rate is the sustained number of requests per second per key (default: 10).
	Rate rate.Limit
	// Burst is the bucket size per key (default: 20).
	Burst int
	// KeyExtractor picks the bucket for a request (default: client IP).
	KeyExtractor func(ctx handler.Context) string
	// IdleTimeout drops buckets unused for this long (default: 10m).
	IdleTimeout time.Duration
	// SetHeaders adds X-RateLimit-Limit and Retry-After headers.
	SetHeaders bool
}

// RateLimit enforces a token bucket per client and answers 429 with
// response.ErrTooManyRequests once a bucket is empty.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			return ClientIP(ctx.Request())
		}
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 10 * time.Minute
	}

	buckets := newBucketSet(cfg.Rate, cfg.Burst, cfg.IdleTimeout)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			res := buckets.get(cfg.KeyExtractor(ctx), time.Now()).Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				return func(w http.ResponseWriter, r *http.Request) error {
					if cfg.SetHeaders {
						w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
						w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
					}
					return response.ErrTooManyRequests
				}
			}

			resp := next(ctx)
			if !cfg.SetHeaders {
				return resp
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
				return resp(w, r)
			}
		}
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type bucketSet struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketSet(limit rate.Limit, burst int, idle time.Duration) *bucketSet {
	return &bucketSet{
		limit:   limit,
		burst:   burst,
		idle:    idle,
		buckets: make(map[string]*bucket),
	}
}

func (s *bucketSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > s.idle {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > s.idle {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// ClientIP returns the client address, preferring proxy headers in the order
// CF-Connecting-IP, X-Forwarded-For (leftmost), X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip := validIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := validIP(first); ip != "" {
			return ip
		}
	}
	if ip := validIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func validIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
