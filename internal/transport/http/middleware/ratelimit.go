package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/verimail/signup-service/internal/domain"
	redisinfra "github.com/verimail/signup-service/internal/infrastructure/redis"
	"github.com/verimail/signup-service/internal/logger"
	"github.com/verimail/signup-service/internal/transport/http/response"
)

// RateLimit enforces a fixed-window per-client budget on a route. A nil
// limiter disables the middleware, and limiter failures let requests
// through; rate limiting degrades before it blocks legitimate traffic.
func RateLimit(limiter *redisinfra.FixedWindowLimiter, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rl:%s:%s:%d", scope, clientIP(r), windowBucket(window))
			dec, err := limiter.AllowFixedWindow(r.Context(), key, limit, window)
			if err != nil {
				l := logger.WithCtx(r.Context())
				l.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			if !dec.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())+1))
				response.Error(w, r, domain.ErrRateLimited(scope))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func windowBucket(window time.Duration) int64 {
	if window <= 0 {
		return 0
	}
	return time.Now().UnixNano() / int64(window)
}
