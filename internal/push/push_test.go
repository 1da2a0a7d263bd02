package push

import (
	"encoding/base64"
	"testing"

	"github.com/rextail90/HabitTrackerRPG/internal/model"
)

func TestReminderPayload(t *testing.T) {
	habit := model.Habit{ID: 42, Name: "Stretch"}
	p := ReminderPayload(habit)

	if p.Title != "Habit Reminder! ⚔️" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Body != "Time to: Stretch" {
		t.Errorf("body = %q", p.Body)
	}
	if p.Tag != "habit-42" {
		t.Errorf("tag = %q, want habit-42", p.Tag)
	}
}

func TestGenerateVAPIDKeys(t *testing.T) {
	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate VAPID keys: %v", err)
	}

	pubBytes, err := base64.RawURLEncoding.DecodeString(pub)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}
	// Uncompressed P-256 point.
	if len(pubBytes) != 65 {
		t.Errorf("public key length = %d, want 65", len(pubBytes))
	}

	privBytes, err := base64.RawURLEncoding.DecodeString(priv)
	if err != nil {
		t.Fatalf("decode private key: %v", err)
	}
	if len(privBytes) != 32 {
		t.Errorf("private key length = %d, want 32", len(privBytes))
	}

	pub2, _, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate second key pair: %v", err)
	}
	if pub == pub2 {
		t.Error("key generation is not random")
	}
}
