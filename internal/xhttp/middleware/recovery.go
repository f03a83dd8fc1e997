package middleware

import (
	"net/http"

	"github.com/garrettladley/ready/internal/xhttp"
	"github.com/garrettladley/ready/internal/xslog"
)

func Recovery(next http.Handler) http.Handler {
	return recoverWith(next, nil)
}

// RecoveryFunc is Recovery that also calls onPanic for every recovered panic.
func RecoveryFunc(onPanic func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return recoverWith(next, onPanic)
	}
}

func recoverWith(next http.Handler, onPanic func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}
			if onPanic != nil {
				onPanic()
			}
			xslog.FromContext(r.Context()).ErrorContext(
				r.Context(),
				"panic recovered",
				xslog.RequestGroup(r),
				xslog.ErrorGroupWithStack(err),
			)
			xhttp.Error(w, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
