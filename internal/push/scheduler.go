package push

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
	"github.com/rextail90/HabitTrackerRPG/internal/model"
	"github.com/rextail90/HabitTrackerRPG/internal/schedule"
)

// SnapshotFunc supplies the habits to evaluate on each pass. The scheduler
// never mutates the returned slice; a fresh snapshot is read every tick, so
// edits made between ticks are naturally picked up.
type SnapshotFunc func() ([]model.Habit, error)

// Scheduler evaluates habit reminders once per tick. Enable arms it and
// runs one immediate pass; Disable cancels the tick goroutine and is safe
// to call repeatedly. Enable/Disable follow last-write-wins: re-enabling
// always cancels the previous run before starting a new one, so at most one
// tick stream exists at a time.
//
// A habit triggers when its reminder time prefix-matches the current
// "HH:MM" clock and its weekday rule covers today. Matches fire once per
// tick with no cross-tick dedup; delivery failures are logged, never
// retried.
type Scheduler struct {
	mu       sync.Mutex
	habits   SnapshotFunc
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(habits SnapshotFunc, notifier Notifier, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Scheduler{
		habits:   habits,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Enable arms the scheduler: any previous run is stopped first, then an
// immediate evaluation pass runs and ticking begins. The scheduler stops
// when ctx is canceled or Disable is called.
func (s *Scheduler) Enable(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	s.logger.Info("reminder scheduler enabled", "interval", s.interval)
}

// Disable stops the scheduler and waits for the tick goroutine to exit.
// Calling it while already idle is a no-op.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.stopLocked()
	s.logger.Info("reminder scheduler disabled")
}

// Enabled reports whether a tick stream is currently armed.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.evaluate()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evaluate()
		}
	}
}

// evaluate runs a single reminder pass against the current time.
func (s *Scheduler) evaluate() {
	now := s.now()
	clock := schedule.Clock(now)
	weekday := schedule.WeekdayIndex(now)

	habits, err := s.habits()
	if err != nil {
		s.logger.Error("reminder snapshot", "error", err)
		return
	}

	for _, h := range habits {
		if !h.IsActive || h.ReminderTime == "" {
			continue
		}
		if !strings.HasPrefix(h.ReminderTime, clock) {
			continue
		}
		if !schedule.IsDueOn(h.DaysOfWeek, weekday) {
			continue
		}

		if err := s.notifier.Remind(h); err != nil {
			if errors.Is(err, apperror.ErrDeliveryUnavailable) {
				s.logger.Debug("reminder delivery unavailable", "habit_id", h.ID)
				continue
			}
			s.logger.Error("reminder delivery", "habit_id", h.ID, "error", err)
		}
	}
}
