package game

import (
	"fmt"
	"strings"
)

// SizeTracker accumulates time toward the next automatic growth step.
type SizeTracker struct {
	Interval float64
	timer    float64
}

func NewSizeTracker(interval float64) *SizeTracker {
	if !(interval > 0) {
		interval = DefaultPlayerGrowth
	}
	return &SizeTracker{Interval: interval}
}

// Tick returns how many growth steps became due during dt. The timer restarts
// from zero on each step, dropping any overshoot.
func (t *SizeTracker) Tick(dt float64) int {
	if dt <= 0 {
		return 0
	}
	t.timer += dt
	if t.timer < t.Interval {
		return 0
	}
	t.timer = 0
	return 1
}

func (t *SizeTracker) Elapsed() float64 {
	return t.timer
}

// TieRule decides consumption between two entities of equal size.
type TieRule int

const (
	// TieLowerIDWins lets the entity with the lower id absorb the other.
	TieLowerIDWins TieRule = iota
	// TieFirstLoses makes the first-checked entity the loser.
	TieFirstLoses
	// TieNoConsumption lets equal-sized entities pass through each other.
	TieNoConsumption
)

func (r TieRule) String() string {
	switch r {
	case TieLowerIDWins:
		return "lower-id-wins"
	case TieFirstLoses:
		return "first-loses"
	case TieNoConsumption:
		return "none"
	}
	return fmt.Sprintf("TieRule(%d)", int(r))
}

func ParseTieRule(s string) (TieRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lower-id-wins", "lower-id", "":
		return TieLowerIDWins, nil
	case "first-loses", "first":
		return TieFirstLoses, nil
	case "none", "no-consumption":
		return TieNoConsumption, nil
	}
	return TieLowerIDWins, fmt.Errorf("unknown tie rule %q", s)
}

// ResolveConsumption picks winner and loser of a contact between a (checked
// first) and b. ok is false when nobody is consumed.
func ResolveConsumption(a, b *Entity, rule TieRule) (winner, loser *Entity, ok bool) {
	if a == nil || b == nil || a == b || !a.Alive() || !b.Alive() {
		return nil, nil, false
	}
	switch {
	case a.Size > b.Size:
		return a, b, true
	case b.Size > a.Size:
		return b, a, true
	}

	switch rule {
	case TieFirstLoses:
		return b, a, true
	case TieNoConsumption:
		return nil, nil, false
	default:
		if a.ID < b.ID {
			return a, b, true
		}
		return b, a, true
	}
}

// Absorb moves the loser's entire size into the winner and marks the loser
// dead. Removing it from the simulation is the caller's job.
func Absorb(winner, loser *Entity) int {
	gained := loser.Size
	winner.Grow(gained)
	loser.alive = false
	return gained
}
