package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/xerrors"
	"github.com/garrettladley/ready/internal/xtime"
)

func pathUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		return uuid.Nil, xerrors.BadRequest(
			xerrors.WithCode("invalid_user_id"),
			xerrors.WithMessage("user id must be a uuid"),
			xerrors.WithCause(err),
		)
	}
	return id, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, xerrors.BadRequest(
			xerrors.WithCode("invalid_"+name),
			xerrors.WithMessage(name+" must be a uuid"),
			xerrors.WithCause(err),
		)
	}
	return id, nil
}

func parseDay(name, value string) (time.Time, error) {
	day, err := xtime.ParseDay(value)
	if err != nil {
		return time.Time{}, xerrors.BadRequest(
			xerrors.WithCode("invalid_"+name),
			xerrors.WithMessage(name+" must be a date formatted "+xtime.DayLayout),
			xerrors.WithCause(err),
		)
	}
	return day, nil
}

// queryDay returns fallback when the parameter is absent.
func queryDay(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	return parseDay(name, value)
}

func invalidBody(err error) error {
	return xerrors.BadRequest(
		xerrors.WithCode("invalid_body"),
		xerrors.WithMessage("invalid JSON body"),
		xerrors.WithCause(err),
	)
}
