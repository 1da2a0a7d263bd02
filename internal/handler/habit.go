package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
	"github.com/rextail90/HabitTrackerRPG/internal/model"
	"github.com/rextail90/HabitTrackerRPG/internal/progress"
	"github.com/rextail90/HabitTrackerRPG/internal/schedule"
	"github.com/rextail90/HabitTrackerRPG/internal/store"
	"github.com/rextail90/HabitTrackerRPG/internal/websocket"
)

const defaultCompletionsLimit = 100

type HabitHandler struct {
	habits      *store.HabitStore
	users       *store.UserStore
	completions *store.CompletionStore
	curve       progress.Curve
	historyDays int
	hub         *websocket.Hub
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewHabitHandler(hs *store.HabitStore, us *store.UserStore, cs *store.CompletionStore, curve progress.Curve, historyDays int, hub *websocket.Hub, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{
		habits:      hs,
		users:       us,
		completions: cs,
		curve:       curve,
		historyDays: historyDays,
		hub:         hub,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (h *HabitHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

// getHabit loads a habit, translating a missing row into ErrNotFound so
// callers can classify with errors.Is.
func (h *HabitHandler) getHabit(id int64) (*model.Habit, error) {
	habit, err := h.habits.GetByID(id)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, fmt.Errorf("%w: habit %d", apperror.ErrNotFound, id)
	}
	return habit, nil
}

// writeHabitError maps a lookup failure onto the response.
func (h *HabitHandler) writeHabitError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Habit not found")
		return
	}
	h.logger.Error("get habit", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to get habit")
}

type habitRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	ReminderTime string `json:"reminder_time"`
	DaysOfWeek   []int  `json:"days_of_week" validate:"dive,gte=0,lte=6"`
	XPReward     int    `json:"xp_reward" validate:"gte=1,lte=100"`
}

// Create handles POST /habits?user_id=N
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.XPReward == 0 {
		req.XPReward = 10
	}

	habit, errMsg := h.buildHabit(userID, req)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	created, err := h.habits.Create(habit)
	if err != nil {
		h.logger.Error("create habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create habit")
		return
	}

	h.broadcast(websocket.HabitEvent(websocket.EventHabitCreated, created))
	writeJSON(w, http.StatusCreated, created)
}

// buildHabit validates a request and assembles a normalized habit.
// Returns a non-empty message on rejection.
func (h *HabitHandler) buildHabit(userID int64, req habitRequest) (*model.Habit, string) {
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		return nil, "name is required, days_of_week must be in [0,6], xp_reward in [1,100]"
	}

	days, err := schedule.NormalizeDays(req.DaysOfWeek)
	if err != nil {
		return nil, "days_of_week values must be in [0,6]"
	}

	reminder := ""
	if req.ReminderTime != "" {
		reminder, err = schedule.ParseClock(req.ReminderTime)
		if err != nil {
			return nil, "reminder_time must be HH:MM or HH:MM:SS"
		}
	}

	habit := &model.Habit{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		ReminderTime: reminder,
		DaysOfWeek:   days,
		XPReward:     req.XPReward,
		IsActive:     true,
	}
	if err := habit.Validate(); err != nil {
		return nil, err.Error()
	}
	return habit, ""
}

// List handles GET /habits?user_id=N&active_only=true
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	activeOnly := true
	if v := r.URL.Query().Get("active_only"); v != "" {
		activeOnly, _ = strconv.ParseBool(v)
	}

	habits, err := h.habits.List(userID, activeOnly)
	if err != nil {
		h.logger.Error("list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list habits")
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

// Get handles GET /habits/{id}
func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	habit, err := h.getHabit(id)
	if err != nil {
		h.writeHabitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

type habitUpdateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ReminderTime *string `json:"reminder_time"`
	DaysOfWeek   *[]int  `json:"days_of_week"`
	XPReward     *int    `json:"xp_reward"`
	IsActive     *bool   `json:"is_active"`
}

// Update handles PUT /habits/{id}. Only fields present in the body change;
// a rejected update leaves the stored habit untouched.
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.getHabit(id)
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	var req habitUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.ReminderTime != nil {
		if *req.ReminderTime == "" {
			existing.ReminderTime = ""
		} else {
			reminder, err := schedule.ParseClock(*req.ReminderTime)
			if err != nil {
				writeError(w, http.StatusBadRequest, "reminder_time must be HH:MM or HH:MM:SS")
				return
			}
			existing.ReminderTime = reminder
		}
	}
	if req.DaysOfWeek != nil {
		days, err := schedule.NormalizeDays(*req.DaysOfWeek)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days_of_week values must be in [0,6]")
			return
		}
		existing.DaysOfWeek = days
	}
	if req.XPReward != nil {
		existing.XPReward = *req.XPReward
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := existing.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.habits.Update(existing)
	if err != nil {
		h.logger.Error("update habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update habit")
		return
	}

	h.broadcast(websocket.HabitEvent(websocket.EventHabitUpdated, updated))
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /habits/{id} — a soft delete; history is kept.
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	habit, err := h.getHabit(id)
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	if err := h.habits.Deactivate(id); err != nil {
		h.logger.Error("deactivate habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete habit")
		return
	}

	h.broadcast(websocket.HabitEvent(websocket.EventHabitDeleted, habit))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

type completeRequest struct {
	HabitID int64      `json:"habit_id" validate:"required"`
	Date    *time.Time `json:"date"`
}

// Complete handles POST /habits/complete?user_id=N. The reward frozen on
// the completion row is the habit's xp_reward at this moment.
func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "habit_id is required")
		return
	}

	habit, err := h.getHabit(req.HabitID)
	if err == nil && habit.UserID != userID {
		// Another user's habit reads as missing.
		err = fmt.Errorf("%w: habit %d", apperror.ErrNotFound, req.HabitID)
	}
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	at := time.Now().UTC()
	if req.Date != nil {
		at = req.Date.UTC()
	}

	completion, err := h.completions.Record(habit, at)
	if err == store.ErrAlreadyCompleted {
		writeError(w, http.StatusBadRequest, "Habit already completed today")
		return
	}
	if err != nil {
		h.logger.Error("record completion", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record completion")
		return
	}

	h.broadcast(websocket.CompletionEvent(habit, h.statsAfterCompletion(userID)))
	writeJSON(w, http.StatusCreated, completion)
}

// statsAfterCompletion derives fresh stats for the completion broadcast.
// Failures only degrade the event payload, never the request.
func (h *HabitHandler) statsAfterCompletion(userID int64) *model.UserStats {
	now := time.Now().UTC()

	habits, err := h.habits.List(userID, true)
	if err != nil {
		h.logger.Error("list habits for event", "error", err)
		return nil
	}
	completions, err := h.completions.ListSince(userID, now.AddDate(0, 0, -h.historyDays))
	if err != nil {
		h.logger.Error("list completions for event", "error", err)
		return nil
	}
	totalXP, err := h.completions.TotalXP(userID)
	if err != nil {
		h.logger.Error("total xp for event", "error", err)
		return nil
	}

	stats, err := progress.ComputeStats(h.curve, habits, completions, totalXP, now)
	if err != nil {
		h.logger.Error("compute stats for event", "error", err)
		return nil
	}
	return &stats
}

// ListCompletions handles GET /habits/completions?user_id=N&limit=K
func (h *HabitHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	limit := defaultCompletionsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	completions, err := h.completions.ListByUser(userID, limit)
	if err != nil {
		h.logger.Error("list completions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list completions")
		return
	}
	if completions == nil {
		completions = []model.Completion{}
	}
	writeJSON(w, http.StatusOK, completions)
}
