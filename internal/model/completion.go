package model

import "time"

type Completion struct {
	ID      int64 `json:"id"`
	HabitID int64 `json:"habit_id"`
	UserID  int64 `json:"user_id"`
	// XPAwarded is the habit's reward frozen at recording time. Editing
	// the habit's xp_reward afterwards never rewrites history.
	XPAwarded int `json:"xp_awarded"`
	// Date is the completion's calendar day, normalized to start of day.
	Date        time.Time `json:"date"`
	CompletedAt time.Time `json:"completed_at"`
}
