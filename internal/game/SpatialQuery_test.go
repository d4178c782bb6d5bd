package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuery(obstacles ...Obstacle) *SpatialQuery {
	return NewSpatialQuery(NewArena(10, 10, obstacles...), quietLogger())
}

func TestObstacleAheadRay(t *testing.T) {
	q := newTestQuery(NewObstacle("north", mgl64.Vec2{-1, 0.45}, mgl64.Vec2{1, 1}))
	extents := mgl64.Vec2{0.25, 0.25}

	o, hit := q.FirstObstacleAhead(mgl64.Vec2{0, 0}, Up, 0.5, extents)
	require.True(t, hit)
	assert.Equal(t, "north", o.ID)

	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 0}, Down, 0.5, extents))
	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 0}, Up, 0.2, mgl64.Vec2{0.1, 0.1}), "too short to reach")
}

func TestObstacleAheadSweepCatchesOffsetWall(t *testing.T) {
	// The wall is beside the ray but inside the swept footprint.
	q := newTestQuery(NewObstacle("post", mgl64.Vec2{0.1, 0.6}, mgl64.Vec2{0.5, 0.8}))

	assert.True(t, q.ObstacleAhead(mgl64.Vec2{0, 0}, Up, 0.5, mgl64.Vec2{0.25, 0.25}))
	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 0}, Up, 0.5, mgl64.Vec2{0.1, 0.1}), "narrow footprint passes")
}

func TestObstacleAheadDegenerateProbe(t *testing.T) {
	q := newTestQuery(NewObstacle("block", mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1}))

	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 2}, Direction{}, 1, mgl64.Vec2{0.25, 0.25}))
	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 2}, Down, 0, mgl64.Vec2{0.25, 0.25}))
	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 2}, Down, -1, mgl64.Vec2{0.25, 0.25}))
	assert.False(t, q.ObstacleAhead(mgl64.Vec2{0, 2}, Direction{Dx: 1, Dy: -1}, 1, mgl64.Vec2{0.25, 0.25}))
}

func TestWouldOverlapReturnsLowestID(t *testing.T) {
	q := newTestQuery(
		NewObstacle("b", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}),
		NewObstacle("a", mgl64.Vec2{-1, 0}, mgl64.Vec2{0, 1}),
	)

	o, hit := q.OverlappingObstacle(mgl64.Vec2{0, 0.5}, 0.2)
	require.True(t, hit)
	assert.Equal(t, "a", o.ID)

	assert.False(t, q.WouldOverlap(mgl64.Vec2{0, 3}, 0.5))
	assert.False(t, q.WouldOverlap(mgl64.Vec2{0, 0.5}, 0), "zero radius never overlaps")
}

func TestClearanceViolatedOnlyWhenApproaching(t *testing.T) {
	q := newTestQuery(NewObstacle("east", mgl64.Vec2{1, -5}, mgl64.Vec2{2, 5}))
	ids := []string{"east"}

	_, near := q.ClearanceViolated(mgl64.Vec2{0.5, 0}, mgl64.Vec2{0.6, 0}, 0.5, ids)
	assert.True(t, near, "approaching inside clearance")

	_, near = q.ClearanceViolated(mgl64.Vec2{0.6, 0}, mgl64.Vec2{0.5, 0}, 0.5, ids)
	assert.False(t, near, "moving away")

	_, near = q.ClearanceViolated(mgl64.Vec2{0.6, 0}, mgl64.Vec2{0.6, 0.1}, 0.5, ids)
	assert.False(t, near, "moving along")

	_, near = q.ClearanceViolated(mgl64.Vec2{-1, 0}, mgl64.Vec2{-0.9, 0}, 0.5, ids)
	assert.False(t, near, "approaching but still outside clearance")

	_, near = q.ClearanceViolated(mgl64.Vec2{0.5, 0}, mgl64.Vec2{0.6, 0}, 0.5, []string{"unknown"})
	assert.False(t, near)
}

func TestNewSpatialQueryWithoutProvider(t *testing.T) {
	q := NewSpatialQuery(nil, quietLogger())

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.WouldOverlap(mgl64.Vec2{0, 0}, 100))
}

func TestNewSpatialQuerySkipsDuplicateIDs(t *testing.T) {
	q := newTestQuery(
		NewObstacle("dup", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}),
		NewObstacle("dup", mgl64.Vec2{5, 5}, mgl64.Vec2{6, 6}),
	)

	assert.Equal(t, 1, q.Len())
	o, ok := q.Obstacle("dup")
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec2{1, 1}, o.Max)
	assert.False(t, q.WouldOverlap(mgl64.Vec2{5.5, 5.5}, 0.2))
}

func TestWalledArenaCenterIsFree(t *testing.T) {
	arena := NewWalledArena(DefaultArenaHalfWidth, DefaultArenaHalfHeight, DefaultWallThickness)
	q := NewSpatialQuery(arena, quietLogger())

	assert.Equal(t, 7, q.Len())
	assert.False(t, q.WouldOverlap(arena.Center(), DefaultBaseExtent*DefaultMaxBotSize))
	assert.True(t, q.WouldOverlap(mgl64.Vec2{0, DefaultArenaHalfHeight}, 0.1))
}

func TestWalledArenaGeometry(t *testing.T) {
	arena := NewWalledArena(20, 10, 0.5)

	lo, hi := arena.Inner()
	assert.Equal(t, mgl64.Vec2{-19.5, -9.5}, lo)
	assert.Equal(t, mgl64.Vec2{19.5, 9.5}, hi)
	assert.InDelta(t, 4.5, arena.Passage(), 1e-9, "gap under the center partition")

	open := NewArena(3, 2)
	assert.Equal(t, 4.0, open.Passage())
	open.AddObstacle(NewObstacle("post", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}))
	assert.Len(t, open.Obstacles(), 1)
}

func TestClampInside(t *testing.T) {
	q := NewSpatialQuery(NewWalledArena(5, 5, 0.5), quietLogger())

	assert.Equal(t, mgl64.Vec2{4.25, -4.25}, q.ClampInside(mgl64.Vec2{7, -9}, 0.25))
	assert.Equal(t, mgl64.Vec2{1, 2}, q.ClampInside(mgl64.Vec2{1, 2}, 0.25))
	assert.Equal(t, mgl64.Vec2{0, 0}, q.ClampInside(mgl64.Vec2{3, -3}, 6), "too wide for either axis")

	unbounded := NewSpatialQuery(nil, quietLogger())
	assert.Equal(t, mgl64.Vec2{70, 70}, unbounded.ClampInside(mgl64.Vec2{70, 70}, 1))
}
