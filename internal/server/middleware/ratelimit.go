package middleware

import (
	"net/http"

	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/xerrors"
	"github.com/garrettladley/ready/internal/xhttp"
	"github.com/garrettladley/ready/internal/xslog"
)

const reasonIPRateLimit = "ip_rate_limit"

// RateLimit applies per client IP rate limiting. onLimited, when set, is
// called for every rejected request.
func RateLimit(limiter storage.RateLimiter, onLimited func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.GetRequestIP(r)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
					xerrors.WithMessage("rate limit check failed"),
					xerrors.WithCause(err),
				))
				return
			}

			if !result.Allowed {
				if onLimited != nil {
					onLimited()
				}
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithRetryAfter(result.RetryAfter),
					xerrors.WithReason(reasonIPRateLimit),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
