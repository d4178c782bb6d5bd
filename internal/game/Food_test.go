package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPlace(pos mgl64.Vec2, calls *int) func() (mgl64.Vec2, bool) {
	return func() (mgl64.Vec2, bool) {
		*calls++
		return pos, true
	}
}

func TestFoodSpawnsOnInterval(t *testing.T) {
	s := NewFoodSpawner(1, 2)
	calls := 0
	place := fixedPlace(mgl64.Vec2{3, 3}, &calls)

	_, ok := s.Tick(0.5, place)
	assert.False(t, ok)
	assert.Equal(t, 0, calls)

	f, ok := s.Tick(0.5, place)
	require.True(t, ok)
	assert.Equal(t, 1, f.ID)
	assert.Equal(t, 1, f.Value)
	assert.Equal(t, mgl64.Vec2{3, 3}, f.Position)

	s.Tick(1, place)
	assert.Equal(t, 2, s.Len())

	_, ok = s.Tick(10, place)
	assert.False(t, ok, "full board spawns nothing")
	assert.Equal(t, 2, calls)
}

func TestFoodFailedPlacementWaitsForNextInterval(t *testing.T) {
	s := NewFoodSpawner(1, 5)
	calls := 0
	nowhere := func() (mgl64.Vec2, bool) {
		calls++
		return mgl64.Vec2{}, false
	}

	_, ok := s.Tick(1, nowhere)
	assert.False(t, ok)
	_, ok = s.Tick(0.5, nowhere)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestFoodConsume(t *testing.T) {
	s := NewFoodSpawner(1, 5)
	near, far := 0, 0
	s.Tick(1, fixedPlace(mgl64.Vec2{0.2, 0}, &near))
	s.Tick(1, fixedPlace(mgl64.Vec2{5, 5}, &far))

	e := newTestEntity(1, Controlled, mgl64.Vec2{0, 0}, Up, 1)
	eaten := s.Consume(e)

	require.Len(t, eaten, 1)
	assert.Equal(t, 1, eaten[0].ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Items()[0].ID)
	assert.Empty(t, s.Consume(e))
}

func TestFoodSpawnerDefaults(t *testing.T) {
	s := NewFoodSpawner(0, -1)
	calls := 0

	_, ok := s.Tick(DefaultFoodInterval, fixedPlace(mgl64.Vec2{}, &calls))
	assert.False(t, ok, "max clamps to zero")
	assert.Equal(t, 0, calls)
}
