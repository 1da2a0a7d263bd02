package push

import (
	"errors"
	"log/slog"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
	"github.com/rextail90/HabitTrackerRPG/internal/model"
	"github.com/rextail90/HabitTrackerRPG/internal/store"
)

// Notifier is the delivery collaborator the scheduler emits to.
type Notifier interface {
	Remind(habit model.Habit) error
}

// WebPushNotifier fans a habit reminder out to every registered push
// subscription. With no configured service or no subscriptions it reports
// apperror.ErrDeliveryUnavailable, which the scheduler logs and skips.
type WebPushNotifier struct {
	service *Service
	subs    *store.PushStore
	logger  *slog.Logger
}

func NewWebPushNotifier(service *Service, subs *store.PushStore, logger *slog.Logger) *WebPushNotifier {
	return &WebPushNotifier{service: service, subs: subs, logger: logger}
}

func (n *WebPushNotifier) Remind(habit model.Habit) error {
	if n.service == nil {
		return apperror.ErrDeliveryUnavailable
	}

	subs, err := n.subs.List()
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return apperror.ErrDeliveryUnavailable
	}

	payload := ReminderPayload(habit)
	for _, sub := range subs {
		if err := n.service.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := n.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					n.logger.Error("remove expired subscription", "error", err)
				}
				continue
			}
			n.logger.Error("send reminder", "habit_id", habit.ID, "error", err)
		}
	}
	return nil
}
