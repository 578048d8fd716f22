package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
)

// RateLimiter counts hits per key inside a fixed window. Backed by the
// database so every instance of the service shares one budget per client.
type RateLimiter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

// Logger is the logging interface the middleware depends on.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimit caps requests per client IP inside the window. On a limiter
// failure the request is let through: the booking flow matters more than
// the cap.
func RateLimit(limiter RateLimiter, prefix string, limit int, window time.Duration, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + clientIP(r)

			hits, err := limiter.Hit(r.Context(), key, window)
			if err != nil {
				log.Error("ratelimit: hit failed for key=%s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if hits > limit {
				log.Warn("ratelimit: key=%s over limit (%d/%d)", key, hits, limit)
				handlers.RespondTooManyRequests(w, "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller address, trusting the first X-Forwarded-For
// entry when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
