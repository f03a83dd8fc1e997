package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garrettladley/ready/internal/xcontext"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []RequestIDOption
		header string
		want   string
	}{
		{name: "generated", opts: []RequestIDOption{WithIDFunc(func() string { return "gen" })}, want: "gen"},
		{name: "header ignored by default", opts: []RequestIDOption{WithIDFunc(func() string { return "gen" })}, header: "abc", want: "gen"},
		{name: "trusted header", opts: []RequestIDOption{WithIDFunc(func() string { return "gen" }), WithTrustedHeader()}, header: "abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := RequestID(tt.opts...)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen, _ = xcontext.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen != tt.want {
				t.Errorf("context id = %q, want %q", seen, tt.want)
			}
			if got := rec.Header().Get("X-Request-ID"); got != tt.want {
				t.Errorf("header id = %q, want %q", got, tt.want)
			}
		})
	}
}
