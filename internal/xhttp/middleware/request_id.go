package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/xcontext"
	"github.com/garrettladley/ready/internal/xhttp"
)

// maxRequestIDLen bounds client supplied ids.
const maxRequestIDLen = 128

type requestIDConfig struct {
	newID       func() string
	trustHeader bool
}

type RequestIDOption func(*requestIDConfig)

func WithIDFunc(f func() string) RequestIDOption {
	return func(c *requestIDConfig) { c.newID = f }
}

// WithTrustedHeader reuses an incoming X-Request-ID, e.g. one set by a proxy.
func WithTrustedHeader() RequestIDOption {
	return func(c *requestIDConfig) { c.trustHeader = true }
}

// RequestID stores a request id in the context and echoes it in the
// response headers.
func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	cfg := requestIDConfig{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.trustHeader {
				if h := r.Header.Get(xhttp.XRequestID); h != "" && len(h) <= maxRequestIDLen {
					id = h
				}
			}
			if id == "" {
				id = cfg.newID()
			}
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
