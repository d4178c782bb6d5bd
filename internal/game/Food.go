package game

import "github.com/go-gl/mathgl/mgl64"

// Food is a pellet that grows whoever touches it by Value.
type Food struct {
	ID       int
	Position mgl64.Vec2
	Value    int
}

// FoodSpawner drops a pellet every interval until max pellets are on the
// board.
type FoodSpawner struct {
	interval float64
	max      int
	timer    float64
	nextID   int
	items    []Food
}

func NewFoodSpawner(interval float64, max int) *FoodSpawner {
	if !(interval > 0) {
		interval = DefaultFoodInterval
	}
	if max < 0 {
		max = 0
	}
	return &FoodSpawner{interval: interval, max: max}
}

// Tick advances the spawn timer. When a pellet is due, place is asked for a
// free position; a failed placement retries on the next interval.
func (s *FoodSpawner) Tick(dt float64, place func() (mgl64.Vec2, bool)) (Food, bool) {
	if len(s.items) >= s.max {
		s.timer = 0
		return Food{}, false
	}
	s.timer += dt
	if s.timer < s.interval {
		return Food{}, false
	}
	s.timer = 0

	pos, ok := place()
	if !ok {
		return Food{}, false
	}
	s.nextID++
	f := Food{ID: s.nextID, Position: pos, Value: 1}
	s.items = append(s.items, f)
	return f, true
}

// Consume removes every pellet touching e and returns them.
func (s *FoodSpawner) Consume(e *Entity) []Food {
	var eaten []Food
	kept := s.items[:0]
	for _, f := range s.items {
		if circlesOverlap(e.Position, e.Radius(), f.Position, foodRadius) {
			eaten = append(eaten, f)
			continue
		}
		kept = append(kept, f)
	}
	s.items = kept
	return eaten
}

func (s *FoodSpawner) Items() []Food {
	out := make([]Food, len(s.items))
	copy(out, s.items)
	return out
}

func (s *FoodSpawner) Len() int {
	return len(s.items)
}
