package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// RateLimiter is the fixed-window counter backing request throttling.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy scopes a counter by name, client IP and optionally one URL param.
type RateLimitPolicy struct {
	Name     string
	Limit    int64
	Window   time.Duration
	URLParam string
}

// BlogViewsPolicy throttles view increments per client IP and blog.
func BlogViewsPolicy(limit int, window time.Duration) RateLimitPolicy {
	return RateLimitPolicy{Name: "blog_views", Limit: int64(limit), Window: window, URLParam: "id"}
}

// RateLimit rejects requests with 429 once the policy window is exhausted.
// Counter failures let the request through.
func RateLimit(limiter RateLimiter, policy RateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || policy.Limit <= 0 || policy.Window <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := policy.scope(r)
			allowed, count, err := limiter.FixedWindowAllow(r.Context(), scope, policy.Limit, policy.Window)
			if err != nil {
				logError(r.Context(), logg, "rate_limit.check_failed", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(policy.Window.Seconds())))
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests, please try again later").
					WithDetails(map[string]any{"limit": policy.Limit, "count": count}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (p RateLimitPolicy) scope(r *http.Request) string {
	parts := []string{p.Name, clientIP(r)}
	if p.URLParam != "" {
		parts = append(parts, chi.URLParam(r, p.URLParam))
	}
	return strings.Join(parts, ":")
}

// clientIP relies on chi's RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
