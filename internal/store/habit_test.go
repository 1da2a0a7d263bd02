package store

import (
	"testing"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

func TestHabitCRUD(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	hs := NewHabitStore(db)
	user := createTestUser(t, us)

	habit, err := hs.Create(&model.Habit{
		UserID:       user.ID,
		Name:         "Morning run",
		Description:  "5k before breakfast",
		ReminderTime: "07:00",
		DaysOfWeek:   []int{0, 2, 4},
		XPReward:     25,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if habit.Name != "Morning run" {
		t.Errorf("name = %q, want %q", habit.Name, "Morning run")
	}
	if habit.XPReward != 25 {
		t.Errorf("xp_reward = %d, want 25", habit.XPReward)
	}
	if len(habit.DaysOfWeek) != 3 || habit.DaysOfWeek[1] != 2 {
		t.Errorf("days_of_week = %v, want [0 2 4]", habit.DaysOfWeek)
	}
	if !habit.IsActive {
		t.Error("new habit should be active")
	}

	habit.Name = "Evening run"
	habit.ReminderTime = "19:30"
	updated, err := hs.Update(habit)
	if err != nil {
		t.Fatalf("update habit: %v", err)
	}
	if updated.Name != "Evening run" || updated.ReminderTime != "19:30" {
		t.Errorf("updated habit = %+v", updated)
	}

	if err := hs.Deactivate(habit.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := hs.GetByID(habit.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if got == nil || got.IsActive {
		t.Error("expected soft-deleted habit to remain readable but inactive")
	}

	if err := hs.Delete(habit.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = hs.GetByID(habit.ID)
	if err != nil {
		t.Fatalf("get deleted habit: %v", err)
	}
	if got != nil {
		t.Error("expected nil after hard delete")
	}
}

func TestHabitListActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	hs := NewHabitStore(db)
	user := createTestUser(t, us)

	a := createTestHabit(t, hs, user.ID, "a", 10)
	createTestHabit(t, hs, user.ID, "b", 10)
	if err := hs.Deactivate(a.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := hs.List(user.ID, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "b" {
		t.Errorf("active habits = %+v, want just b", active)
	}

	all, err := hs.List(user.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all habits = %d, want 2", len(all))
	}

	n, err := hs.CountActive(user.ID)
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if n != 1 {
		t.Errorf("count active = %d, want 1", n)
	}
}

func TestHabitEmptyDaysRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	hs := NewHabitStore(db)
	user := createTestUser(t, us)

	habit, err := hs.Create(&model.Habit{
		UserID:   user.ID,
		Name:     "daily",
		XPReward: 10,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if habit.DaysOfWeek == nil || len(habit.DaysOfWeek) != 0 {
		t.Errorf("days_of_week = %v, want empty non-nil slice", habit.DaysOfWeek)
	}
}

func TestListActiveWithReminders(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	hs := NewHabitStore(db)
	user := createTestUser(t, us)

	withReminder, err := hs.Create(&model.Habit{
		UserID: user.ID, Name: "remind me", ReminderTime: "08:00", XPReward: 10, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	createTestHabit(t, hs, user.ID, "silent", 10)

	inactive, err := hs.Create(&model.Habit{
		UserID: user.ID, Name: "retired", ReminderTime: "09:00", XPReward: 10, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if err := hs.Deactivate(inactive.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	habits, err := hs.ListActiveWithReminders()
	if err != nil {
		t.Fatalf("list with reminders: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != withReminder.ID {
		t.Errorf("habits with reminders = %+v, want only %d", habits, withReminder.ID)
	}
}
