package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeTrackerDropsOvershoot(t *testing.T) {
	tracker := NewSizeTracker(5)

	assert.Equal(t, 0, tracker.Tick(2))
	assert.Equal(t, 1, tracker.Tick(3))
	assert.Equal(t, 0.0, tracker.Elapsed())

	assert.Equal(t, 1, tracker.Tick(12), "one step even for a long tick")
	assert.Equal(t, 0.0, tracker.Elapsed())

	assert.Equal(t, 0, tracker.Tick(0))
	assert.Equal(t, 0, tracker.Tick(-3))
}

func TestEntityGrowIgnoresNonPositive(t *testing.T) {
	e := newTestEntity(1, Autonomous, mgl64.Vec2{}, Up, 3)

	assert.False(t, e.Grow(0))
	assert.False(t, e.Grow(-2))
	assert.Equal(t, 3, e.Size)
	assert.True(t, e.Grow(2))
	assert.Equal(t, 5, e.Size)
	assert.Equal(t, mgl64.Vec2{1.25, 1.25}, e.Extents())
}

func TestResolveConsumptionLargerWins(t *testing.T) {
	a := newTestEntity(1, Autonomous, mgl64.Vec2{}, Up, 3)
	b := newTestEntity(2, Autonomous, mgl64.Vec2{}, Up, 5)

	winner, loser, ok := ResolveConsumption(a, b, TieLowerIDWins)
	require.True(t, ok)
	assert.Same(t, b, winner)
	assert.Same(t, a, loser)

	assert.Equal(t, 3, Absorb(winner, loser))
	assert.Equal(t, 8, b.Size)
	assert.False(t, a.Alive())

	_, _, ok = ResolveConsumption(a, b, TieLowerIDWins)
	assert.False(t, ok, "dead entities are not consumed again")
}

func TestResolveConsumptionTieRules(t *testing.T) {
	tests := []struct {
		name       string
		rule       TieRule
		wantOK     bool
		wantWinner int
	}{
		{"lower id wins", TieLowerIDWins, true, 1},
		{"first loses", TieFirstLoses, true, 1},
		{"no consumption", TieNoConsumption, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := newTestEntity(2, Autonomous, mgl64.Vec2{}, Up, 4)
			second := newTestEntity(1, Autonomous, mgl64.Vec2{}, Up, 4)

			winner, _, ok := ResolveConsumption(first, second, tt.rule)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantWinner, winner.ID)
			}
		})
	}
}

func TestResolveConsumptionSelfAndNil(t *testing.T) {
	a := newTestEntity(1, Autonomous, mgl64.Vec2{}, Up, 3)

	_, _, ok := ResolveConsumption(a, a, TieLowerIDWins)
	assert.False(t, ok)
	_, _, ok = ResolveConsumption(a, nil, TieLowerIDWins)
	assert.False(t, ok)
}

func TestParseTieRule(t *testing.T) {
	tests := []struct {
		in   string
		want TieRule
	}{
		{"", TieLowerIDWins},
		{"lower-id-wins", TieLowerIDWins},
		{" First-Loses ", TieFirstLoses},
		{"none", TieNoConsumption},
	}
	for _, tt := range tests {
		got, err := ParseTieRule(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseTieRule("coin-flip")
	assert.Error(t, err)
}

func TestExtentsStopAtMaxExtent(t *testing.T) {
	e := newTestEntity(1, Autonomous, mgl64.Vec2{}, Up, 5)
	require.Equal(t, DefaultMaxExtent, e.MaxExtent)

	e.Grow(90)
	assert.Equal(t, mgl64.Vec2{DefaultMaxExtent, DefaultMaxExtent}, e.Extents())
	assert.InDelta(t, DefaultMaxExtent, e.Radius(), 1e-9)

	e.MaxExtent = 0
	assert.Equal(t, mgl64.Vec2{23.75, 23.75}, e.Extents())
}
