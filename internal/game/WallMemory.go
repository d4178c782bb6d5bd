package game

import "sort"

// WallMemory remembers obstacles an entity recently ran into, each for a
// fixed cooldown. It is owned by exactly one entity.
type WallMemory struct {
	cooldown float64
	entries  map[string]float64
}

func NewWallMemory(cooldown float64) *WallMemory {
	if !(cooldown > 0) {
		cooldown = DefaultWallCooldown
	}
	return &WallMemory{
		cooldown: cooldown,
		entries:  make(map[string]float64),
	}
}

// Remember starts the cooldown for id. An entry that is already present keeps
// its remaining time.
func (m *WallMemory) Remember(id string) {
	if id == "" {
		return
	}
	if _, ok := m.entries[id]; ok {
		return
	}
	m.entries[id] = m.cooldown
}

func (m *WallMemory) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for id := range m.entries {
		m.entries[id] -= dt
		if m.entries[id] <= 0 {
			delete(m.entries, id)
		}
	}
}

func (m *WallMemory) Contains(id string) bool {
	_, ok := m.entries[id]
	return ok
}

func (m *WallMemory) Remaining(id string) (float64, bool) {
	v, ok := m.entries[id]
	return v, ok
}

func (m *WallMemory) IDs() []string {
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *WallMemory) Len() int {
	return len(m.entries)
}

func (m *WallMemory) Clear() {
	for id := range m.entries {
		delete(m.entries, id)
	}
}
