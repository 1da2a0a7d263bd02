package store

import (
	"database/sql"
	"testing"

	"github.com/rextail90/HabitTrackerRPG/internal/database"
	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, us *UserStore) *model.User {
	t.Helper()
	user, err := us.Create("hero", "hero@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestHabit(t *testing.T, hs *HabitStore, userID int64, name string, xp int) *model.Habit {
	t.Helper()
	habit, err := hs.Create(&model.Habit{
		UserID:     userID,
		Name:       name,
		DaysOfWeek: []int{0, 1, 2, 3, 4},
		XPReward:   xp,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return habit
}
