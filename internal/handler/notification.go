package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rextail90/HabitTrackerRPG/internal/push"
)

// NotificationHandler toggles the reminder scheduler. Enabling always
// starts a fresh tick stream with an immediate pass; the scheduler runs on
// the server's base context, not the request's, so it outlives the call.
type NotificationHandler struct {
	scheduler *push.Scheduler
	baseCtx   context.Context
	logger    *slog.Logger
}

func NewNotificationHandler(scheduler *push.Scheduler, baseCtx context.Context, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{scheduler: scheduler, baseCtx: baseCtx, logger: logger}
}

type notificationRequest struct {
	Enabled bool `json:"enabled"`
}

// Update handles PUT /notifications
func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Enabled {
		h.scheduler.Enable(h.baseCtx)
	} else {
		h.scheduler.Disable()
	}

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": h.scheduler.Enabled()})
}

// Status handles GET /notifications
func (h *NotificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": h.scheduler.Enabled()})
}
