package ui

import (
	"fmt"
	"sync"

	"github.com/Mshel/gobble/internal/game"
)

const maxFeedLines = 5

// Hud collects what the simulation pushes to its display collaborators. The
// simulation goroutine writes, the bubbletea goroutine reads.
type Hud struct {
	mu          sync.Mutex
	leaderboard []game.RankEntry
	boost       float64
	feed        []string
}

func NewHud() *Hud {
	return &Hud{boost: 1}
}

func (h *Hud) ShowLeaderboard(entries []game.RankEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaderboard = entries
}

func (h *Hud) SetBoost(fraction float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.boost = fraction
}

func (h *Hud) EntityEliminated(e *game.Entity, eater *game.Entity, rank int) {
	line := fmt.Sprintf("%s left the arena (rank %d)", e.Name, rank)
	if eater != nil {
		line = fmt.Sprintf("%s ate %s", eater.Name, e.Name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.feed = append(h.feed, line)
	if len(h.feed) > maxFeedLines {
		h.feed = h.feed[len(h.feed)-maxFeedLines:]
	}
}

func (h *Hud) Leaderboard() []game.RankEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]game.RankEntry, len(h.leaderboard))
	copy(out, h.leaderboard)
	return out
}

func (h *Hud) Boost() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.boost
}

func (h *Hud) Feed() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.feed))
	copy(out, h.feed)
	return out
}
