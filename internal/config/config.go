// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rextail90/HabitTrackerRPG/internal/progress"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// VAPID key pair for web push. Both empty disables delivery; the
	// scheduler still evaluates reminders and skips sending.
	VAPIDPublicKey  string
	VAPIDPrivateKey string

	// ReminderInterval is the scheduler tick period.
	ReminderInterval time.Duration

	// NotificationsEnabled arms the reminder scheduler at startup.
	NotificationsEnabled bool

	// XPPerLevel is the step of the linear leveling curve.
	XPPerLevel int

	// StatsHistoryDays bounds how much completion history is loaded when
	// deriving stats.
	StatsHistoryDays int
}

// Load reads configuration from HABITRPG_* environment variables. A .env
// file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("HABITRPG_PORT", "8000"),
		DBPath:               getEnv("HABITRPG_DB_PATH", "habitrpg.db"),
		LogLevel:             getEnv("HABITRPG_LOG_LEVEL", "info"),
		VAPIDPublicKey:       getEnv("HABITRPG_VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey:      getEnv("HABITRPG_VAPID_PRIVATE_KEY", ""),
		ReminderInterval:     getDuration("HABITRPG_REMINDER_INTERVAL", 60*time.Second),
		NotificationsEnabled: getBool("HABITRPG_NOTIFICATIONS", true),
		XPPerLevel:           getInt("HABITRPG_XP_PER_LEVEL", progress.DefaultXPPerLevel),
		StatsHistoryDays:     getInt("HABITRPG_STATS_HISTORY_DAYS", 366),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
