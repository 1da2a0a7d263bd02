package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/rextail90/HabitTrackerRPG/internal/config"
	"github.com/rextail90/HabitTrackerRPG/internal/handler"
	"github.com/rextail90/HabitTrackerRPG/internal/middleware"
	"github.com/rextail90/HabitTrackerRPG/internal/progress"
	"github.com/rextail90/HabitTrackerRPG/internal/push"
	"github.com/rextail90/HabitTrackerRPG/internal/store"
	ws "github.com/rextail90/HabitTrackerRPG/internal/websocket"
)

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	userH     *handler.UserHandler
	habitH    *handler.HabitHandler
	pushH     *handler.PushHandler
	notifH    *handler.NotificationHandler
	scheduler *push.Scheduler
	logger    *slog.Logger
}

// New wires stores, handlers, the event hub, and the reminder scheduler.
// baseCtx bounds the scheduler's lifetime: canceling it stops ticking even
// if Disable is never called.
func New(baseCtx context.Context, db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	habitStore := store.NewHabitStore(db)
	completionStore := store.NewCompletionStore(db)
	pushStore := store.NewPushStore(db)

	hub := ws.NewHub(logger.With("component", "websocket"))
	curve := progress.LinearCurve(cfg.XPPerLevel)

	var pushSvc *push.Service
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	}

	pushLogger := logger.With("component", "push")
	notifier := push.NewWebPushNotifier(pushSvc, pushStore, pushLogger)
	scheduler := push.NewScheduler(habitStore.ListActiveWithReminders, notifier, cfg.ReminderInterval, pushLogger)

	return &Server{
		db:        db,
		hub:       hub,
		userH:     handler.NewUserHandler(userStore, habitStore, completionStore, curve, cfg.StatsHistoryDays, logger.With("component", "user")),
		habitH:    handler.NewHabitHandler(habitStore, userStore, completionStore, curve, cfg.StatsHistoryDays, hub, logger.With("component", "habit")),
		pushH:     handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler")),
		notifH:    handler.NewNotificationHandler(scheduler, baseCtx, logger.With("component", "notifications")),
		scheduler: scheduler,
		logger:    logger,
	}
}

// ReminderScheduler exposes the scheduler for lifecycle control in main.
func (s *Server) ReminderScheduler() *push.Scheduler {
	return s.scheduler
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.userH.Create)
	mux.HandleFunc("GET /users/{id}", s.userH.Get)
	mux.HandleFunc("GET /users/{id}/stats", s.userH.Stats)

	mux.HandleFunc("POST /habits", s.habitH.Create)
	mux.HandleFunc("GET /habits", s.habitH.List)
	mux.HandleFunc("POST /habits/complete", s.habitH.Complete)
	mux.HandleFunc("GET /habits/completions", s.habitH.ListCompletions)
	mux.HandleFunc("GET /habits/{id}", s.habitH.Get)
	mux.HandleFunc("PUT /habits/{id}", s.habitH.Update)
	mux.HandleFunc("DELETE /habits/{id}", s.habitH.Delete)

	mux.HandleFunc("GET /push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /push/subscriptions/{id}", s.pushH.Unsubscribe)

	mux.HandleFunc("GET /notifications", s.notifH.Status)
	mux.HandleFunc("PUT /notifications", s.notifH.Update)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))
	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy"}`))
}
