package game

import "sort"

// RankNotFound is returned by RankOf for entities not on the board.
const RankNotFound = -1

type RankEntry struct {
	EntityID int
	Kind     Kind
	Name     string
	Size     int
	Rank     int
}

// LeaderboardDisplay receives the full ranked list after every rebuild.
type LeaderboardDisplay interface {
	ShowLeaderboard(entries []RankEntry)
}

// RankingTable keeps every living entity ordered by size, largest first. Equal
// sizes are ordered by lower entity id. Every change re-sorts the whole table,
// which is fine for a single arena of a few dozen entities.
type RankingTable struct {
	entries []RankEntry
	display LeaderboardDisplay
}

func NewRankingTable(display LeaderboardDisplay) *RankingTable {
	return &RankingTable{display: display}
}

func (t *RankingTable) SetDisplay(display LeaderboardDisplay) {
	t.display = display
	t.publish()
}

// Add inserts or replaces the entry for the entity and rebuilds.
func (t *RankingTable) Add(e *Entity) {
	entry := RankEntry{EntityID: e.ID, Kind: e.Kind, Name: e.Name, Size: e.Size}
	if i := t.indexOf(e.ID); i >= 0 {
		t.entries[i] = entry
	} else {
		t.entries = append(t.entries, entry)
	}
	t.Rebuild()
}

func (t *RankingTable) Remove(id int) bool {
	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	t.Rebuild()
	return true
}

// UpdateOne stores the new size for id and rebuilds the whole table.
func (t *RankingTable) UpdateOne(id, size int) bool {
	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.entries[i].Size = size
	t.Rebuild()
	return true
}

func (t *RankingTable) Rebuild() {
	sort.Slice(t.entries, func(i, j int) bool {
		if t.entries[i].Size != t.entries[j].Size {
			return t.entries[i].Size > t.entries[j].Size
		}
		return t.entries[i].EntityID < t.entries[j].EntityID
	})
	for i := range t.entries {
		t.entries[i].Rank = i + 1
	}
	t.publish()
}

func (t *RankingTable) RankOf(id int) int {
	i := t.indexOf(id)
	if i < 0 {
		return RankNotFound
	}
	return t.entries[i].Rank
}

func (t *RankingTable) Entries() []RankEntry {
	out := make([]RankEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *RankingTable) Len() int {
	return len(t.entries)
}

func (t *RankingTable) indexOf(id int) int {
	for i := range t.entries {
		if t.entries[i].EntityID == id {
			return i
		}
	}
	return -1
}

func (t *RankingTable) publish() {
	if t.display == nil {
		return
	}
	t.display.ShowLeaderboard(t.Entries())
}
