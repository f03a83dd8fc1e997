package ready

import (
	"io"
	"net/http"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/xerrors"
	"github.com/garrettladley/ready/internal/xhttp"
)

const retryAfterHeader = "Retry-After"

// codeCauses maps error codes onto the errors the service returns for them,
// so callers can use errors.Is against a remote tracker.
var codeCauses = map[string]error{
	"not_found":     repository.ErrNotFound,
	"unknown_task":  schedule.ErrUnknownTask,
	"invalid_range": tracker.ErrInvalidRange,
}

// parseAPIError rebuilds the server's error response as an *xerrors.Error.
func parseAPIError(resp *http.Response) error {
	e := &xerrors.Error{
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return e
	}

	var errResp struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	if err := go_json.Unmarshal(body, &errResp); err != nil {
		if len(body) > 0 {
			e.Message = string(body)
		}
		return e
	}

	e.Code = errResp.Error
	if errResp.Message != "" {
		e.Message = errResp.Message
	}
	e.Cause = codeCauses[e.Code]
	if len(errResp.Fields) > 0 {
		e.Validation = &xerrors.ValidationInfo{Fields: errResp.Fields}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		e.RateLimit = &xerrors.RateLimitInfo{
			RetryAfter: parseRetryAfter(resp.Header.Get(retryAfterHeader)),
			Reason:     resp.Header.Get(xhttp.XRateLimitReason),
		}
	}

	return e
}

func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
