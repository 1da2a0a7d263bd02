package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
)

const (
	MinXPReward = 1
	MaxXPReward = 100
)

type Habit struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// ReminderTime is a normalized time-of-day string ("HH:MM" or
	// "HH:MM:SS"), empty when no reminder is set. No timezone handling.
	ReminderTime string `json:"reminder_time"`
	// DaysOfWeek holds weekday indices, 0 = Monday through 6 = Sunday.
	// An empty set means the habit is due every day.
	DaysOfWeek []int     `json:"days_of_week"`
	XPReward   int       `json:"xp_reward"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate enforces the construction invariants: non-empty name, XP reward
// within bounds, weekday indices unique and in range.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("%w: name is required", apperror.ErrInvalidInput)
	}
	if h.XPReward < MinXPReward || h.XPReward > MaxXPReward {
		return fmt.Errorf("%w: xp_reward must be between %d and %d", apperror.ErrInvalidInput, MinXPReward, MaxXPReward)
	}
	seen := make(map[int]bool, len(h.DaysOfWeek))
	for _, d := range h.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day of week %d out of range [0,6]", apperror.ErrInvalidInput, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate day of week %d", apperror.ErrInvalidInput, d)
		}
		seen[d] = true
	}
	return nil
}
