package push

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

// 2025-03-03 08:00 is a Monday.
var mondayEight = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

type fakeNotifier struct {
	mu     sync.Mutex
	habits []int64
	ch     chan int64
	err    error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan int64, 64)}
}

func (f *fakeNotifier) Remind(h model.Habit) error {
	f.mu.Lock()
	f.habits = append(f.habits, h.ID)
	f.mu.Unlock()
	select {
	case f.ch <- h.ID:
	default:
	}
	return f.err
}

func (f *fakeNotifier) reminded() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.habits...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticHabits(habits ...model.Habit) SnapshotFunc {
	return func() ([]model.Habit, error) { return habits, nil }
}

func testScheduler(habits SnapshotFunc, n Notifier, interval time.Duration, now time.Time) *Scheduler {
	s := NewScheduler(habits, n, interval, discardLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestEvaluateMatchesDueHabitAtReminderTime(t *testing.T) {
	weekdays := []int{0, 1, 2, 3, 4}
	habits := []model.Habit{
		{ID: 1, Name: "stretch", ReminderTime: "08:00", DaysOfWeek: weekdays, IsActive: true},
		{ID: 2, Name: "off minute", ReminderTime: "08:01", DaysOfWeek: weekdays, IsActive: true},
		{ID: 3, Name: "weekend only", ReminderTime: "08:00", DaysOfWeek: []int{5, 6}, IsActive: true},
		{ID: 4, Name: "inactive", ReminderTime: "08:00", DaysOfWeek: weekdays, IsActive: false},
		{ID: 5, Name: "no reminder", DaysOfWeek: weekdays, IsActive: true},
		{ID: 6, Name: "every day", ReminderTime: "08:00", IsActive: true},
	}

	n := newFakeNotifier()
	s := testScheduler(staticHabits(habits...), n, time.Hour, mondayEight)

	s.evaluate()

	got := n.reminded()
	if len(got) != 2 || got[0] != 1 || got[1] != 6 {
		t.Fatalf("reminded habits = %v, want [1 6]", got)
	}
}

func TestEvaluateSecondsInReminderStillMatch(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "meditate", ReminderTime: "08:00:30", IsActive: true}
	s := testScheduler(staticHabits(habit), n, time.Hour, mondayEight)

	s.evaluate()

	if got := n.reminded(); len(got) != 1 {
		t.Fatalf("reminded habits = %v, want one match", got)
	}
}

func TestEvaluateNoMatchOffMinute(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "stretch", ReminderTime: "08:00", IsActive: true}
	s := testScheduler(staticHabits(habit), n, time.Hour, mondayEight.Add(time.Minute))

	s.evaluate()

	if got := n.reminded(); len(got) != 0 {
		t.Fatalf("reminded habits = %v, want none at 08:01", got)
	}
}

func TestEvaluateContinuesWhenDeliveryUnavailable(t *testing.T) {
	n := newFakeNotifier()
	n.err = apperror.ErrDeliveryUnavailable

	habits := []model.Habit{
		{ID: 1, Name: "a", ReminderTime: "08:00", IsActive: true},
		{ID: 2, Name: "b", ReminderTime: "08:00", IsActive: true},
	}
	s := testScheduler(staticHabits(habits...), n, time.Hour, mondayEight)

	s.evaluate()

	if got := n.reminded(); len(got) != 2 {
		t.Fatalf("reminded habits = %v, want both evaluated despite unavailable delivery", got)
	}
}

func TestEvaluateSnapshotError(t *testing.T) {
	n := newFakeNotifier()
	failing := func() ([]model.Habit, error) { return nil, errors.New("db closed") }
	s := testScheduler(failing, n, time.Hour, mondayEight)

	s.evaluate()

	if got := n.reminded(); len(got) != 0 {
		t.Fatalf("reminded habits = %v, want none on snapshot failure", got)
	}
}

func TestEnableRunsImmediatePass(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "stretch", ReminderTime: "08:00", IsActive: true}
	s := testScheduler(staticHabits(habit), n, time.Hour, mondayEight)

	s.Enable(context.Background())
	defer s.Disable()

	select {
	case id := <-n.ch:
		if id != 1 {
			t.Fatalf("reminded habit %d, want 1", id)
		}
	case <-time.After(time.Second):
		t.Fatal("no immediate evaluation pass after Enable")
	}
}

func TestDisableStopsDelivery(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "stretch", ReminderTime: "08:00", IsActive: true}
	s := testScheduler(staticHabits(habit), n, 5*time.Millisecond, mondayEight)

	s.Enable(context.Background())

	select {
	case <-n.ch:
	case <-time.After(time.Second):
		t.Fatal("no delivery after Enable")
	}

	s.Disable()

	// Drain anything delivered before Disable returned, then verify
	// silence: Disable joins the tick goroutine, so nothing more may
	// arrive.
	for {
		select {
		case <-n.ch:
			continue
		default:
		}
		break
	}

	select {
	case id := <-n.ch:
		t.Fatalf("delivery for habit %d after Disable", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDisableIdempotent(t *testing.T) {
	n := newFakeNotifier()
	s := testScheduler(staticHabits(), n, time.Hour, mondayEight)

	s.Disable()
	s.Disable()

	s.Enable(context.Background())
	s.Disable()
	s.Disable()

	if s.Enabled() {
		t.Fatal("scheduler still enabled after Disable")
	}
}

func TestReEnableReplacesTickStream(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "stretch", ReminderTime: "08:00", IsActive: true}
	s := testScheduler(staticHabits(habit), n, 5*time.Millisecond, mondayEight)

	// Back-to-back enables must leave exactly one tick stream, so a
	// single Disable silences everything.
	s.Enable(context.Background())
	s.Enable(context.Background())

	select {
	case <-n.ch:
	case <-time.After(time.Second):
		t.Fatal("no delivery after re-Enable")
	}

	s.Disable()

	for {
		select {
		case <-n.ch:
			continue
		default:
		}
		break
	}

	select {
	case <-n.ch:
		t.Fatal("delivery after Disable: more than one tick stream was running")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestContextCancelStopsScheduler(t *testing.T) {
	n := newFakeNotifier()
	habit := model.Habit{ID: 1, Name: "stretch", ReminderTime: "08:00", IsActive: true}
	s := testScheduler(staticHabits(habit), n, 5*time.Millisecond, mondayEight)

	ctx, cancel := context.WithCancel(context.Background())
	s.Enable(ctx)

	select {
	case <-n.ch:
	case <-time.After(time.Second):
		t.Fatal("no delivery after Enable")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)

	for {
		select {
		case <-n.ch:
			continue
		default:
		}
		break
	}

	select {
	case <-n.ch:
		t.Fatal("delivery after owning context was canceled")
	case <-time.After(50 * time.Millisecond):
	}
}
