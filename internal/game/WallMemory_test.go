package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWallMemoryExpires(t *testing.T) {
	m := NewWallMemory(0.5)
	m.Remember("wall-top")

	assert.True(t, m.Contains("wall-top"))
	m.Tick(0.3)
	remaining, ok := m.Remaining("wall-top")
	assert.True(t, ok)
	assert.InDelta(t, 0.2, remaining, 1e-9)

	m.Tick(0.2)
	assert.False(t, m.Contains("wall-top"))
	assert.Equal(t, 0, m.Len())
}

func TestWallMemoryDoesNotRefresh(t *testing.T) {
	m := NewWallMemory(0.5)
	m.Remember("a")
	m.Tick(0.4)
	m.Remember("a")

	remaining, _ := m.Remaining("a")
	assert.InDelta(t, 0.1, remaining, 1e-9)
}

func TestWallMemoryIDsAreSorted(t *testing.T) {
	m := NewWallMemory(1)
	m.Remember("wall-right")
	m.Remember("partition-east")
	m.Remember("")
	m.Remember("wall-left")

	assert.Equal(t, []string{"partition-east", "wall-left", "wall-right"}, m.IDs())

	m.Clear()
	assert.Empty(t, m.IDs())
}

func TestWallMemoryDefaultsCooldown(t *testing.T) {
	m := NewWallMemory(0)
	m.Remember("a")
	remaining, _ := m.Remaining("a")
	assert.Equal(t, DefaultWallCooldown, remaining)

	m.Tick(-1)
	assert.True(t, m.Contains("a"), "negative dt is ignored")
}
