// Package progress computes the derived character view: leveling from
// accumulated XP and streak/completion queries over the completion ledger.
// Everything here is a pure function of its inputs.
package progress

import (
	"fmt"

	"github.com/rextail90/HabitTrackerRPG/internal/apperror"
)

// Curve maps a level to the XP required to advance from it to the next.
// The curve is injected configuration, never hard-coded at call sites.
type Curve func(level int) int

// LinearCurve returns the classic curve where advancing from level n costs
// n*step XP.
func LinearCurve(step int) Curve {
	return func(level int) int { return level * step }
}

// DefaultXPPerLevel is the default step: advancing from level n costs
// n*100 XP.
const DefaultXPPerLevel = 100

// Progression locates a total XP amount on a leveling curve.
type Progression struct {
	Level       int
	XPIntoLevel int
	XPToNext    int
}

// Advance walks the curve from level 1, consuming totalXP until the next
// requirement is not met. Zero XP resolves to level 1 with nothing into it.
// A curve yielding a non-positive requirement fails with ErrInvalidCurve
// before it can produce a zero denominator downstream.
func Advance(totalXP int, curve Curve) (Progression, error) {
	if totalXP < 0 {
		return Progression{}, fmt.Errorf("%w: total XP %d is negative", apperror.ErrInvalidInput, totalXP)
	}

	level := 1
	xp := totalXP
	for {
		need := curve(level)
		if need <= 0 {
			return Progression{}, fmt.Errorf("%w: level %d requires %d XP", apperror.ErrInvalidCurve, level, need)
		}
		if xp < need {
			return Progression{Level: level, XPIntoLevel: xp, XPToNext: need}, nil
		}
		xp -= need
		level++
	}
}
