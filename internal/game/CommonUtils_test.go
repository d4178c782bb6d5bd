package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// testConfig is the default config with growth pushed out of the way so
// movement tests keep a fixed footprint.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.PlayerGrowthInterval = 1e9
	cfg.BotGrowthInterval = 1e9
	return cfg
}

func TestClosestPointOnBox(t *testing.T) {
	min, max := mgl64.Vec2{0, 0}, mgl64.Vec2{2, 1}

	assert.Equal(t, mgl64.Vec2{0, 0.5}, closestPointOnBox(mgl64.Vec2{-3, 0.5}, min, max))
	assert.Equal(t, mgl64.Vec2{2, 1}, closestPointOnBox(mgl64.Vec2{5, 5}, min, max))
	assert.Equal(t, mgl64.Vec2{1, 0.5}, closestPointOnBox(mgl64.Vec2{1, 0.5}, min, max), "inside point is its own closest point")
}

func TestCircleBoxOverlapIsStrict(t *testing.T) {
	min, max := mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}

	assert.True(t, circleBoxOverlap(mgl64.Vec2{-0.5, 0.5}, 0.6, min, max))
	assert.False(t, circleBoxOverlap(mgl64.Vec2{-0.5, 0.5}, 0.5, min, max), "touching is not overlapping")
	assert.False(t, circleBoxOverlap(mgl64.Vec2{-2, -2}, 1, min, max))
}

func TestSegmentHitsBox(t *testing.T) {
	min, max := mgl64.Vec2{1, -1}, mgl64.Vec2{2, 1}

	assert.True(t, segmentHitsBox(mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, min, max))
	assert.True(t, segmentHitsBox(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, min, max), "reaching the face counts")
	assert.False(t, segmentHitsBox(mgl64.Vec2{0, 0}, mgl64.Vec2{0.9, 0}, min, max))
	assert.False(t, segmentHitsBox(mgl64.Vec2{0, 2}, mgl64.Vec2{3, 0}, min, max), "parallel and outside")
	assert.False(t, segmentHitsBox(mgl64.Vec2{0, 0}, mgl64.Vec2{-3, 0}, min, max), "pointing away")
}

func TestBoxesAndCirclesOverlap(t *testing.T) {
	assert.True(t, boxesOverlap(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{2, 2}))
	assert.False(t, boxesOverlap(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, 1}))

	assert.True(t, circlesOverlap(mgl64.Vec2{0, 0}, 1, mgl64.Vec2{1.5, 0}, 1))
	assert.False(t, circlesOverlap(mgl64.Vec2{0, 0}, 1, mgl64.Vec2{2, 0}, 1))
}
