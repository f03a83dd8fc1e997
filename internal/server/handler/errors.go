package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/xerrors"
)

// writeError maps service errors onto HTTP errors.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case xerrors.As(err) != nil:
	case errors.Is(err, repository.ErrNotFound):
		err = xerrors.NotFound(xerrors.WithMessage(err.Error()))
	case errors.Is(err, schedule.ErrUnknownTask):
		err = xerrors.NotFound(xerrors.WithCode("unknown_task"), xerrors.WithMessage(err.Error()))
	case errors.Is(err, tracker.ErrInvalidRange), errors.Is(err, tracker.ErrRangeTooLong):
		err = xerrors.BadRequest(xerrors.WithCode("invalid_range"), xerrors.WithMessage(err.Error()))
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful can be written
		return
	default:
		err = xerrors.Internal(xerrors.WithCause(err))
	}
	xerrors.WriteError(ctx, w, err)
}
