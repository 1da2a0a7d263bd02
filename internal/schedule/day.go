// Package schedule normalizes calendar-day and time-of-day representations
// and decides whether a habit's recurrence rule makes it due on a given
// weekday. All functions are pure.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
)

// Clock formats an instant's local time as zero-padded "HH:MM".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// WeekdayIndex converts an instant's weekday from Go's Sunday-based
// numbering to the 0 = Monday … 6 = Sunday convention used by habit
// recurrence rules.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock validates a time-of-day string and returns it normalized to
// zero-padded "HH:MM" (or "HH:MM:SS" when seconds are present), so that
// stored reminder times always prefix-match the scheduler's minute clock.
// Malformed input fails with apperror.ErrInvalidInput.
func ParseClock(s string) (string, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: time of day %q must be HH:MM or HH:MM:SS", apperror.ErrInvalidInput, s)
	}

	limits := []int{23, 59, 59}
	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return "", fmt.Errorf("%w: time of day %q has invalid field %q", apperror.ErrInvalidInput, s, p)
		}
		fields[i] = n
	}

	if len(fields) == 3 {
		return fmt.Sprintf("%02d:%02d:%02d", fields[0], fields[1], fields[2]), nil
	}
	return fmt.Sprintf("%02d:%02d", fields[0], fields[1]), nil
}

// IsDueOn reports whether a habit with the given active weekdays is
// scheduled for the weekday index. An empty set means every day.
func IsDueOn(daysOfWeek []int, weekday int) bool {
	if len(daysOfWeek) == 0 {
		return true
	}
	for _, d := range daysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// NormalizeDays deduplicates and sorts a set of weekday indices, rejecting
// values outside [0,6].
func NormalizeDays(days []int) ([]int, error) {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: day of week %d out of range [0,6]", apperror.ErrInvalidInput, d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}
