package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rextail90/HabitTrackerRPG/internal/progress"
	"github.com/rextail90/HabitTrackerRPG/internal/store"
)

type UserHandler struct {
	users       *store.UserStore
	habits      *store.HabitStore
	completions *store.CompletionStore
	curve       progress.Curve
	historyDays int
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewUserHandler(us *store.UserStore, hs *store.HabitStore, cs *store.CompletionStore, curve progress.Curve, historyDays int, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:       us,
		habits:      hs,
		completions: cs,
		curve:       curve,
		historyDays: historyDays,
		validate:    validator.New(),
		logger:      logger,
	}
}

type userRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "username and a valid email are required")
		return
	}

	user, err := h.users.Create(req.Username, req.Email)
	if err == store.ErrEmailTaken {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Stats handles GET /users/{id}/stats. The character view is derived from
// the ledger on every call, never read from storage.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		h.logger.Error("get user for stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	now := time.Now().UTC()

	habits, err := h.habits.List(id, true)
	if err != nil {
		h.logger.Error("list habits for stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	completions, err := h.completions.ListSince(id, now.AddDate(0, 0, -h.historyDays))
	if err != nil {
		h.logger.Error("list completions for stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	totalXP, err := h.completions.TotalXP(id)
	if err != nil {
		h.logger.Error("total xp", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	stats, err := progress.ComputeStats(h.curve, habits, completions, totalXP, now)
	if err != nil {
		h.logger.Error("compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "leveling curve misconfigured")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
