package api

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/ratelimit"
)

// RateLimitMiddleware rate limits mutating requests by client IP.
// Returns 429 Too Many Requests with a Retry-After header when the limit is
// exceeded. Reads are never limited.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			retry := int(math.Ceil(limiter.RetryAfter(key).Seconds()))
			if retry < 1 {
				retry = 1
			}
			logger.Warn("Rate limit exceeded",
				"ip", key,
				"path", r.URL.Path,
				"retry_after", retry,
			)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(APIEnvelope{
				Version: EnvelopeVersion,
				Error:   "Too many requests. Please try again later.",
				Code:    string(domainerrors.CodeRateLimited),
				Message: "Too many requests. Please try again later.",
			})
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	// First entry of X-Forwarded-For is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
