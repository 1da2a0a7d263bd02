package progress

import (
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

const dayFormat = "2006-01-02"

// CompletedOn reports whether any completion for the habit falls on the
// same calendar day as the given instant. Matching compares day strings,
// so two completions differing only in time-of-day both count, and
// duplicate records are harmless.
func CompletedOn(habitID int64, day time.Time, completions []model.Completion) bool {
	key := day.Format(dayFormat)
	for _, c := range completions {
		if c.HabitID == habitID && c.Date.Format(dayFormat) == key {
			return true
		}
	}
	return false
}

// CurrentStreak counts consecutive calendar days with at least one
// completion of any habit, walking backward day by day and stopping at the
// first gap. The walk anchors at today, or at yesterday when today has no
// completion yet, so an unbroken run is not lost before the day is done.
func CurrentStreak(completions []model.Completion, today time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	days := make(map[string]bool, len(completions))
	for _, c := range completions {
		days[c.Date.Format(dayFormat)] = true
	}

	anchor := today
	if !days[anchor.Format(dayFormat)] {
		anchor = anchor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[anchor.Format(dayFormat)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// CompletedToday counts habits from the given list that have a completion
// dated today.
func CompletedToday(habits []model.Habit, completions []model.Completion, today time.Time) int {
	count := 0
	for _, h := range habits {
		if CompletedOn(h.ID, today, completions) {
			count++
		}
	}
	return count
}
