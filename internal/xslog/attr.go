package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/version"
	"github.com/garrettladley/ready/internal/xhttp"
	"github.com/garrettladley/ready/internal/xtime"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func UserID(id uuid.UUID) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, id.String())
}

func SessionID(id uuid.UUID) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, id.String())
}

func TaskID(id string) slog.Attr {
	const taskIDKey = "task_id"
	return slog.String(taskIDKey, id)
}

// Date logs a calendar day as YYYY-MM-DD.
func Date(t time.Time) slog.Attr {
	const dateKey = "date"
	return slog.String(dateKey, xtime.FormatDay(t))
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Start(t time.Time) slog.Attr {
	const startKey = "start"
	return slog.String(startKey, xtime.FormatDay(t))
}

func End(t time.Time) slog.Attr {
	const endKey = "end"
	return slog.String(endKey, xtime.FormatDay(t))
}

func Score(score int) slog.Attr {
	const scoreKey = "score"
	return slog.Int(scoreKey, score)
}

func CacheHit(hit bool) slog.Attr {
	const cacheHitKey = "cache_hit"
	return slog.Bool(cacheHitKey, hit)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}
