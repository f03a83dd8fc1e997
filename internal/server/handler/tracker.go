package handler

import (
	"net/http"
	"time"

	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xhttp"
	"github.com/garrettladley/ready/internal/xslog"
	"github.com/garrettladley/ready/internal/xtime"
)

// DefaultHistoryDays is the history window when no start is given.
const DefaultHistoryDays = 30

type Tracker struct {
	service tracker.Service
	loc     *time.Location
	now     func() time.Time
}

func NewTracker(service tracker.Service, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{service: service, loc: loc, now: time.Now}
}

func (h *Tracker) today() time.Time {
	return xtime.Today(h.now(), h.loc)
}

// HandlePutAssessment handles PUT /api/users/{userID}/assessments/{date}.
func (h *Tracker) HandlePutAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := parseDay("date", r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var a wellness.DailyAssessment
	if err := xhttp.DecodeJSON(w, r, &a); err != nil {
		writeError(ctx, w, invalidBody(err))
		return
	}
	a.Date = day

	saved, err := h.service.SubmitAssessment(ctx, userID, a)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, saved)
}

// HandleGetAssessment handles GET /api/users/{userID}/assessments/{date}.
func (h *Tracker) HandleGetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := parseDay("date", r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	a, err := h.service.GetAssessment(ctx, userID, day)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, a)
}

// HandleCreateSession handles POST /api/users/{userID}/sessions.
func (h *Tracker) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var s wellness.TrainingSession
	if err := xhttp.DecodeJSON(w, r, &s); err != nil {
		writeError(ctx, w, invalidBody(err))
		return
	}

	saved, err := h.service.LogSession(ctx, userID, s)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteCreated(w, saved)
}

// HandleDeleteSession handles DELETE /api/users/{userID}/sessions/{sessionID}.
func (h *Tracker) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	sessionID, err := pathUUID(r, "sessionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.service.DeleteSession(ctx, userID, sessionID); err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteNoContent(w)
}

// HandleSummary handles GET /api/users/{userID}/summary?date=.
// The date defaults to today.
func (h *Tracker) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := queryDay(r, "date", h.today())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.service.Summary(ctx, userID, day)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, summary)
}

// HandleHistory handles GET /api/users/{userID}/history?start=&end=.
// end defaults to today and start to DefaultHistoryDays before end.
func (h *Tracker) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	end, err := queryDay(r, "end", h.today())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := queryDay(r, "start", xtime.AddDays(end, -(DefaultHistoryDays-1)))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	days, err := h.service.History(ctx, userID, start, end)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	xslog.FromContext(ctx).DebugContext(ctx, "history loaded",
		xslog.UserID(userID), xslog.Start(start), xslog.End(end), xslog.Count(len(days)))
	xhttp.WriteOK(w, days)
}

// HandleTasks handles GET /api/users/{userID}/tasks.
func (h *Tracker) HandleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tasks, err := h.service.PendingTasks(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, tasks)
}

// HandleCompleteTask handles POST /api/users/{userID}/tasks/{taskID}/complete.
func (h *Tracker) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	taskID := wellness.TaskID(r.PathValue("taskID"))
	if err := h.service.CompleteTask(ctx, userID, taskID); err != nil {
		writeError(ctx, w, err)
		return
	}
	xhttp.WriteNoContent(w)
}
