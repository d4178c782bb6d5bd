package game

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeRecord struct {
	dir     Direction
	blocked bool
}

func newTestController(seed int64, obstacles ...Obstacle) (*MovementController, *SpatialQuery) {
	q := newTestQuery(obstacles...)
	resolver := NewOverlapResolver(q, DefaultSafetyMargin, DefaultFallbackStep, quietLogger())
	selector := NewDirectionSelector(rand.New(rand.NewSource(seed)), DefaultMinChange, DefaultMaxChange)
	return NewMovementController(q, resolver, selector, DefaultWallCheck, quietLogger()), q
}

var (
	northWall = NewObstacle("block", mgl64.Vec2{-1, 0.45}, mgl64.Vec2{1, 1})
	eastWall  = NewObstacle("east", mgl64.Vec2{0.45, -1}, mgl64.Vec2{1, 1})
	westWall  = NewObstacle("west", mgl64.Vec2{-1, -1}, mgl64.Vec2{-0.45, 1})
	southWall = NewObstacle("south", mgl64.Vec2{-1, -1}, mgl64.Vec2{1, -0.45})
)

func TestStepMovesForwardWhenFree(t *testing.T) {
	m, _ := newTestController(1)
	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Right, 1)

	outcome := m.Step(e, 0.1)

	assert.Equal(t, Moved, outcome)
	assert.InDelta(t, 0.1, e.Position.X(), 1e-9)
	assert.Equal(t, Right, e.Direction)
	assert.Equal(t, Right, e.LastDirection)
}

func TestStepTriesPerpendicularsBeforeReverse(t *testing.T) {
	m, q := newTestController(1, northWall, eastWall, westWall)
	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)

	var probes []probeRecord
	m.SetProbeHook(func(_ *Entity, dir Direction, blocked bool) {
		probes = append(probes, probeRecord{dir, blocked})
	})

	outcome := m.Step(e, 0.1)

	require.Equal(t, Moved, outcome)
	assert.Equal(t, []probeRecord{
		{Up, true},
		{Right, true},
		{Left, true},
		{Down, false},
	}, probes)
	assert.Equal(t, Down, e.Direction)
	assert.InDelta(t, -0.1, e.Position.Y(), 1e-9)
	assert.False(t, q.WouldOverlap(e.Position, e.CheckRadius()))
	assert.Equal(t, []string{"block", "east", "west"}, e.Memory.IDs())
}

func TestStepSurrounded(t *testing.T) {
	m, _ := newTestController(1, northWall, eastWall, westWall, southWall)
	e := newTestEntity(1, Autonomous, mgl64.Vec2{0, 0}, Up, 1)
	e.Steering = NewWanderSteering(NewDirectionSelector(rand.New(rand.NewSource(1)), 100, 100))

	outcome := m.Step(e, 0.1)

	assert.Equal(t, Surrounded, outcome)
	assert.Equal(t, mgl64.Vec2{0, 0}, e.Position)
	assert.True(t, e.Direction.IsCardinal())
}

func TestStepResolvesExistingOverlapFirst(t *testing.T) {
	m, q := newTestController(1, northWall)
	e := newTestEntity(1, Autonomous, mgl64.Vec2{0, 0.3}, Up, 1)

	outcome := m.Step(e, 0.1)

	assert.Equal(t, Resolved, outcome)
	assert.True(t, e.Memory.Contains("block"))
	assert.False(t, q.WouldOverlap(e.Position, e.CheckRadius()))
}

func TestStepWithoutTimeDoesNotMove(t *testing.T) {
	m, _ := newTestController(1)
	e := newTestEntity(1, Controlled, mgl64.Vec2{2, 2}, Up, 1)

	assert.Equal(t, Idle, m.Step(e, 0))
	assert.Equal(t, Idle, m.Step(e, -1))
	assert.Equal(t, mgl64.Vec2{2, 2}, e.Position)
}

func TestStepAppliesIntentSteering(t *testing.T) {
	m, _ := newTestController(1)
	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)
	intent := NewIntentSteering()
	e.Steering = intent

	intent.SetIntent(-1, 0.2)
	m.Step(e, 0.1)
	assert.Equal(t, Left, e.Direction)

	intent.SetIntent(1, 0)
	m.Step(e, 0.1)
	assert.Equal(t, Left, e.Direction, "reversal ignored")
}

func TestApplyManualRejectsReversal(t *testing.T) {
	m, _ := newTestController(1)
	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)

	assert.False(t, m.ApplyManual(e, Down))
	assert.Equal(t, Up, e.Direction)

	assert.True(t, m.ApplyManual(e, Up))
	assert.True(t, m.ApplyManual(e, Right))
	assert.Equal(t, Right, e.Direction)
	assert.False(t, m.ApplyManual(e, Direction{}))
}

func TestApplyManualRejectsBlockedDirection(t *testing.T) {
	m, _ := newTestController(1, eastWall)
	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)

	assert.False(t, m.ApplyManual(e, Right))
	assert.Equal(t, Up, e.Direction)
	assert.True(t, m.ApplyManual(e, Left))
}

func TestWallContactAutonomousTurnsAway(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		m, _ := newTestController(seed, northWall)
		e := newTestEntity(1, Autonomous, mgl64.Vec2{0, 0}, Up, 1)
		wander := NewWanderSteering(NewDirectionSelector(rand.New(rand.NewSource(seed)), 4, 8))
		e.Steering = wander

		res := m.WallContact(e, "block")

		assert.Equal(t, Unresolved, res)
		assert.True(t, e.Memory.Contains("block"))
		assert.True(t, e.Direction.IsCardinal())
		assert.NotEqual(t, Down, e.Direction)
	}
}

func TestWallContactControlledPicksFreePerpendicular(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m, _ := newTestController(seed, northWall, eastWall)
		e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)

		m.WallContact(e, "block")

		assert.Equal(t, Left, e.Direction, "seed %d", seed)
	}
}

func TestWallContactResolvesOverlap(t *testing.T) {
	m, q := newTestController(1, northWall)
	e := newTestEntity(1, Autonomous, mgl64.Vec2{0, 0.3}, Up, 1)

	res := m.WallContact(e, "block")

	assert.Equal(t, ResolvedPush, res)
	assert.InDelta(t, 0.15, e.Position.Y(), 1e-9)
	assert.False(t, q.WouldOverlap(e.Position, e.CheckRadius()))
}

func TestWallContactUnknownObstacle(t *testing.T) {
	m, _ := newTestController(1, northWall)
	e := newTestEntity(1, Autonomous, mgl64.Vec2{0, 0}, Up, 1)

	assert.Equal(t, Unresolved, m.WallContact(e, "nope"))
	assert.Equal(t, 0, e.Memory.Len())
	assert.Equal(t, Up, e.Direction)
}

func TestMovementNeverCommitsOverlap(t *testing.T) {
	starts := []mgl64.Vec2{{0, 0}, {5, 5}, {-5, 5}, {15, 0}, {-15, -5}}

	for seed := int64(1); seed <= 10; seed++ {
		arena := NewWalledArena(DefaultArenaHalfWidth, DefaultArenaHalfHeight, DefaultWallThickness)
		q := NewSpatialQuery(arena, quietLogger())
		selector := NewDirectionSelector(rand.New(rand.NewSource(seed)), 0.5, 2)
		m := NewMovementController(q, NewOverlapResolver(q, DefaultSafetyMargin, DefaultFallbackStep, quietLogger()), selector, DefaultWallCheck, quietLogger())

		var entities []*Entity
		for i, p := range starts {
			e := newTestEntity(i+1, Autonomous, p, selector.PickRandomCardinal(), 1+i%3)
			e.Speed = 3
			e.Steering = NewWanderSteering(selector)
			require.False(t, q.WouldOverlap(e.Position, e.CheckRadius()))
			entities = append(entities, e)
		}

		for tick := 0; tick < 500; tick++ {
			for _, e := range entities {
				before := e.Position
				outcome := m.Step(e, 0.05)
				if outcome == Moved {
					assert.False(t, q.WouldOverlap(e.Position, e.CheckRadius()), "seed %d tick %d entity %d moved into a wall", seed, tick, e.ID)
				}
				if outcome == Surrounded || outcome == Idle {
					assert.Equal(t, before, e.Position)
				}
				assert.True(t, e.Direction.IsCardinal())
				assert.True(t, arena.Contains(e.Position))
			}
		}
	}
}

func TestMoveOutcomeString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "moved", Moved.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "surrounded", Surrounded.String())
	assert.Equal(t, "backstep", ResolvedBackstep.String())
}
