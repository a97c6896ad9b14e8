package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/dayan/pkg/logger"
	"github.com/wonny/dayan/pkg/redis"
)

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"client":   clientKey(r),
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// clientLimiter keeps one token bucket per client address
// ⭐ SSOT: 인스턴스 로컬 레이트 리밋
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    10 * time.Minute,
	}
}

func (l *clientLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.clients[client]
	if !ok {
		l.evict(now)
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// evict drops buckets idle longer than l.idle; called with l.mu held
func (l *clientLimiter) evict(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.clients, key)
		}
	}
}

// rateLimitMiddleware applies the local token bucket, then the shared
// Redis window when one is configured. A failing Redis lets requests through.
func rateLimitMiddleware(local *clientLimiter, shared *redis.RateLimiter, metrics *Metrics, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)

			if local != nil && !local.allow(client, time.Now()) {
				metrics.RateLimited()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			if shared != nil {
				cfg := redis.ReportRateLimit(client)
				allowed, remaining, err := shared.Allow(r.Context(), cfg)
				switch {
				case err != nil:
					log.WithError(err).Warn("Shared rate limiter unavailable")
				case !allowed:
					metrics.RateLimited()
					w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
					writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
					return
				default:
					w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the client host without port
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
