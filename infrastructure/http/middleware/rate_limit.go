package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/horolog/horolog/infrastructure/http/response"
	"github.com/horolog/horolog/infrastructure/service/logger"
	"github.com/horolog/horolog/infrastructure/service/ratelimit"
)

// RateLimitMiddleware throttles login attempts per client IP. Limiter errors
// fail open: a broken Redis must not lock admins out.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	logger  logger.Logger
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: log}
}

func (m *RateLimitMiddleware) LimitLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientIP := getClientIP(r)
		key := fmt.Sprintf("login:ip:%s", clientIP)

		allowed, err := m.limiter.Allow(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "rate limit check failed", err, map[string]interface{}{
				"ip": clientIP,
			})
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			w.Header().Set("Retry-After", "900")
			response.TooManyRequests(w, "too many login attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// getClientIP extracts the client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
