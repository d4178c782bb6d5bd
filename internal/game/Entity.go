package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Kind int

const (
	Controlled Kind = iota
	Autonomous
)

func (k Kind) String() string {
	if k == Controlled {
		return "Player"
	}
	return "Enemy"
}

// Entity is a mobile arena participant. Its footprint is a square whose half
// size grows linearly with Size up to MaxExtent.
type Entity struct {
	ID            int
	Name          string
	Kind          Kind
	Position      mgl64.Vec2
	Direction     Direction
	LastDirection Direction
	Size          int
	Speed         float64
	BaseExtent    float64
	MaxExtent     float64
	Memory        *WallMemory
	Boost         *BoostStamina
	Growth        *SizeTracker
	Steering      DirectionSource
	alive         bool
	lastMove      MoveOutcome
}

func NewEntity(id int, name string, kind Kind, pos mgl64.Vec2, dir Direction, size int, cfg Config) *Entity {
	if !dir.IsCardinal() {
		dir = Up
	}
	if size < 1 {
		size = 1
	}

	growthInterval := cfg.BotGrowthInterval
	if kind == Controlled {
		growthInterval = cfg.PlayerGrowthInterval
	}

	e := &Entity{
		ID:            id,
		Name:          name,
		Kind:          kind,
		Position:      pos,
		Direction:     dir,
		LastDirection: dir,
		Size:          size,
		Speed:         cfg.MoveSpeed,
		BaseExtent:    cfg.BaseExtent,
		MaxExtent:     cfg.MaxExtent,
		Memory:        NewWallMemory(cfg.WallCooldown),
		Growth:        NewSizeTracker(growthInterval),
		alive:         true,
	}
	if kind == Controlled {
		e.Boost = NewBoostStamina(cfg.MaxBoost, cfg.BoostFactor, nil)
	}
	return e
}

func (e *Entity) Alive() bool {
	return e.alive
}

// Extents is the half size of the footprint box. A non-positive MaxExtent
// leaves it unbounded.
func (e *Entity) Extents() mgl64.Vec2 {
	s := e.BaseExtent * float64(e.Size)
	if e.MaxExtent > 0 {
		s = min(s, e.MaxExtent)
	}
	return mgl64.Vec2{s, s}
}

// LastMove is the outcome of the entity's most recent movement tick.
func (e *Entity) LastMove() MoveOutcome {
	return e.lastMove
}

// Radius is the effective radius used for overlap resolution.
func (e *Entity) Radius() float64 {
	ext := e.Extents()
	return math.Min(ext.X(), ext.Y())
}

// CheckRadius is the slightly smaller circle used to test positions.
func (e *Entity) CheckRadius() float64 {
	return e.Radius() * overlapRadiusScale
}

// MemoryClearance is the wider distance kept from recently hit obstacles.
func (e *Entity) MemoryClearance() float64 {
	return e.Extents().Len() * overlapRadiusScale
}

func (e *Entity) NextPosition(dir Direction, dt float64) mgl64.Vec2 {
	return e.Position.Add(dir.Vec().Mul(e.Speed * dt))
}

// Grow adds amount to Size. Non-positive amounts are ignored so Size never
// decreases.
func (e *Entity) Grow(amount int) bool {
	if amount <= 0 {
		return false
	}
	e.Size += amount
	return true
}

func (e *Entity) commit(pos mgl64.Vec2, dir Direction) {
	e.Position = pos
	if dir.IsCardinal() {
		e.Direction = dir
		e.LastDirection = dir
	}
}
