package progress

import (
	"errors"
	"testing"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
)

func TestAdvanceZeroXP(t *testing.T) {
	p, err := Advance(0, LinearCurve(100))
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if p.Level != 1 {
		t.Errorf("level = %d, want 1", p.Level)
	}
	if p.XPIntoLevel != 0 {
		t.Errorf("xp into level = %d, want 0", p.XPIntoLevel)
	}
	if p.XPToNext != 100 {
		t.Errorf("xp to next = %d, want 100", p.XPToNext)
	}
}

func TestAdvancePartialLevel(t *testing.T) {
	// 10 XP against a 100-per-level curve: still level 1, 10 in.
	p, err := Advance(10, LinearCurve(100))
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if p.Level != 1 || p.XPIntoLevel != 10 || p.XPToNext != 100 {
		t.Errorf("got %+v, want level 1, 10/100", p)
	}
}

func TestAdvanceLevelBoundaries(t *testing.T) {
	curve := LinearCurve(100)

	tests := []struct {
		totalXP   int
		wantLevel int
		wantInto  int
		wantNext  int
	}{
		{99, 1, 99, 100},
		{100, 2, 0, 200},    // level 1 costs 100
		{299, 2, 199, 200},  // level 2 costs 200
		{300, 3, 0, 300},    // 100 + 200 spent
		{650, 4, 50, 400},   // 100+200+300 spent, 50 into level 4
	}

	for _, tt := range tests {
		p, err := Advance(tt.totalXP, curve)
		if err != nil {
			t.Fatalf("Advance(%d): %v", tt.totalXP, err)
		}
		if p.Level != tt.wantLevel || p.XPIntoLevel != tt.wantInto || p.XPToNext != tt.wantNext {
			t.Errorf("Advance(%d) = %+v, want level %d, %d/%d",
				tt.totalXP, p, tt.wantLevel, tt.wantInto, tt.wantNext)
		}
	}
}

func TestAdvanceInvariants(t *testing.T) {
	curve := LinearCurve(100)
	for totalXP := 0; totalXP <= 2000; totalXP += 7 {
		p, err := Advance(totalXP, curve)
		if err != nil {
			t.Fatalf("Advance(%d): %v", totalXP, err)
		}
		if p.Level < 1 {
			t.Fatalf("Advance(%d): level %d < 1", totalXP, p.Level)
		}
		if p.XPIntoLevel >= p.XPToNext {
			t.Fatalf("Advance(%d): xp into level %d >= requirement %d", totalXP, p.XPIntoLevel, p.XPToNext)
		}
	}
}

func TestAdvanceRejectsBadCurve(t *testing.T) {
	zero := func(level int) int { return 0 }
	if _, err := Advance(50, zero); !errors.Is(err, apperror.ErrInvalidCurve) {
		t.Errorf("zero curve: got %v, want ErrInvalidCurve", err)
	}

	negative := func(level int) int { return -10 }
	if _, err := Advance(50, negative); !errors.Is(err, apperror.ErrInvalidCurve) {
		t.Errorf("negative curve: got %v, want ErrInvalidCurve", err)
	}
}

func TestAdvanceRejectsNegativeXP(t *testing.T) {
	if _, err := Advance(-1, LinearCurve(100)); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("negative xp: got %v, want ErrInvalidInput", err)
	}
}
