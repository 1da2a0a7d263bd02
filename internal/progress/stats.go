package progress

import (
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

// ComputeStats assembles the derived character view from a snapshot of the
// user's habits, their completion history, and the total XP recorded in the
// ledger. The habits slice is expected to hold active habits only; totalXP
// is summed from frozen per-completion awards by the storage layer.
func ComputeStats(curve Curve, habits []model.Habit, completions []model.Completion, totalXP int, now time.Time) (model.UserStats, error) {
	prog, err := Advance(totalXP, curve)
	if err != nil {
		return model.UserStats{}, err
	}

	return model.UserStats{
		Level:          prog.Level,
		XP:             prog.XPIntoLevel,
		TotalXP:        totalXP,
		XPToNextLevel:  prog.XPToNext,
		TotalHabits:    len(habits),
		CompletedToday: CompletedToday(habits, completions, now),
		CurrentStreak:  CurrentStreak(completions, now),
	}, nil
}
