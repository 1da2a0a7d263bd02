package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

// ErrAlreadyCompleted is returned when recording a completion for a habit
// that already has one on the same calendar day.
var ErrAlreadyCompleted = errors.New("habit already completed today")

type CompletionStore struct {
	db *sql.DB
}

func NewCompletionStore(db *sql.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.Completion, error) {
	var c model.Completion
	err := scanner.Scan(&c.ID, &c.HabitID, &c.UserID, &c.XPAwarded, &c.Date, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const completionCols = `id, habit_id, user_id, xp_awarded, date, completed_at`

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Record stores a completion for the habit on the given instant's calendar
// day, freezing the habit's current XP reward on the row. At most one
// completion per habit per day is accepted; a second attempt returns
// ErrAlreadyCompleted and leaves the ledger unchanged.
func (s *CompletionStore) Record(habit *model.Habit, at time.Time) (*model.Completion, error) {
	day := startOfDay(at.UTC())

	existing, err := s.getByHabitAndDay(habit.ID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCompleted
	}

	result, err := s.db.Exec(
		`INSERT INTO habit_completions (habit_id, user_id, xp_awarded, date) VALUES (?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.XPReward, day,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+completionCols+` FROM habit_completions WHERE id = ?`, id)
	c, err := scanCompletion(row)
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

func (s *CompletionStore) getByHabitAndDay(habitID int64, day time.Time) (*model.Completion, error) {
	row := s.db.QueryRow(
		`SELECT `+completionCols+` FROM habit_completions WHERE habit_id = ? AND date = ?`,
		habitID, day,
	)
	c, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completion by day: %w", err)
	}
	return c, nil
}

// ListByUser returns the user's most recent completions, newest first.
func (s *CompletionStore) ListByUser(userID int64, limit int) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM habit_completions WHERE user_id = ? ORDER BY completed_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

// ListSince returns completions dated on or after the given day, oldest
// first. Used when deriving streaks over a bounded history window.
func (s *CompletionStore) ListSince(userID int64, day time.Time) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM habit_completions WHERE user_id = ? AND date >= ? ORDER BY date ASC, id ASC`,
		userID, startOfDay(day.UTC()),
	)
	if err != nil {
		return nil, fmt.Errorf("list completions since: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

// TotalXP sums the frozen per-completion awards for the user.
func (s *CompletionStore) TotalXP(userID int64) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(xp_awarded), 0) FROM habit_completions WHERE user_id = ?`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total xp: %w", err)
	}
	return total, nil
}
