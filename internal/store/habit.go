package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

type HabitStore struct {
	db *sql.DB
}

func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

func scanHabit(scanner interface{ Scan(...any) error }) (*model.Habit, error) {
	var h model.Habit
	var days string
	var active int

	err := scanner.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.ReminderTime,
		&days, &h.XPReward, &active, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &h.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("decode days_of_week: %w", err)
	}
	if h.DaysOfWeek == nil {
		h.DaysOfWeek = []int{}
	}
	h.IsActive = active != 0
	return &h, nil
}

const habitCols = `id, user_id, name, description, reminder_time, days_of_week, xp_reward, is_active, created_at`

func encodeDays(days []int) (string, error) {
	if days == nil {
		days = []int{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("encode days_of_week: %w", err)
	}
	return string(b), nil
}

func (s *HabitStore) Create(h *model.Habit) (*model.Habit, error) {
	days, err := encodeDays(h.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO habits (user_id, name, description, reminder_time, days_of_week, xp_reward, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, 1)`,
		h.UserID, h.Name, h.Description, h.ReminderTime, days, h.XPReward,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *HabitStore) GetByID(id int64) (*model.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitCols+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// List returns the user's habits, optionally restricted to active ones.
func (s *HabitStore) List(userID int64, activeOnly bool) ([]model.Habit, error) {
	query := `SELECT ` + habitCols + ` FROM habits WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// ListActiveWithReminders returns every active habit that has a reminder
// time set, across all users. This is the reminder scheduler's snapshot.
func (s *HabitStore) ListActiveWithReminders() ([]model.Habit, error) {
	rows, err := s.db.Query(
		`SELECT ` + habitCols + ` FROM habits WHERE is_active = 1 AND reminder_time != '' ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits with reminders: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (s *HabitStore) Update(h *model.Habit) (*model.Habit, error) {
	days, err := encodeDays(h.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	active := 0
	if h.IsActive {
		active = 1
	}

	_, err = s.db.Exec(
		`UPDATE habits SET name = ?, description = ?, reminder_time = ?, days_of_week = ?, xp_reward = ?, is_active = ? WHERE id = ?`,
		h.Name, h.Description, h.ReminderTime, days, h.XPReward, active, h.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return s.GetByID(h.ID)
}

// Deactivate soft-deletes a habit. Completion history stays intact.
func (s *HabitStore) Deactivate(id int64) error {
	_, err := s.db.Exec(`UPDATE habits SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate habit: %w", err)
	}
	return nil
}

// Delete removes a habit row entirely. Completions cascade away with it.
func (s *HabitStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func (s *HabitStore) CountActive(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM habits WHERE user_id = ? AND is_active = 1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active habits: %w", err)
	}
	return n, nil
}
