package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats is the derived character view. It is recomputed from the
// completion ledger on every request and never persisted, so it always
// reflects the latest recorded completions.
type UserStats struct {
	Level          int `json:"level"`
	XP             int `json:"xp"`
	TotalXP        int `json:"total_xp"`
	XPToNextLevel  int `json:"xp_to_next_level"`
	TotalHabits    int `json:"total_habits"`
	CompletedToday int `json:"completed_today"`
	CurrentStreak  int `json:"current_streak"`
}
