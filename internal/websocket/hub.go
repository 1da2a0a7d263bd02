// Package websocket fans habit-tracker events out to connected clients so
// the frontend can refresh its lists and character stats without polling.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

// Event is a realtime notification broadcast to all clients.
type Event struct {
	Type  string           `json:"type"`
	ID    int64            `json:"id,omitempty"`
	Habit *model.Habit     `json:"habit,omitempty"`
	Stats *model.UserStats `json:"stats,omitempty"`
}

const (
	EventHabitCreated       = "habit_created"
	EventHabitUpdated       = "habit_updated"
	EventHabitDeleted       = "habit_deleted"
	EventCompletionRecorded = "completion_recorded"
)

// HabitEvent builds an event carrying the habit it concerns.
func HabitEvent(eventType string, habit *model.Habit) Event {
	var id int64
	if habit != nil {
		id = habit.ID
	}
	return Event{Type: eventType, ID: id, Habit: habit}
}

// CompletionEvent announces a recorded completion together with the
// freshly derived stats, so clients can update the character view in one
// message.
func CompletionEvent(habit *model.Habit, stats *model.UserStats) Event {
	return Event{Type: EventCompletionRecorded, ID: habit.ID, Habit: habit, Stats: stats}
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients. Clients whose send
// buffer is full miss the event rather than blocking the caller.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
