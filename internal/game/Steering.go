package game

// DirectionSource decides which way an entity wants to go this tick. ok is
// false when the source has no new opinion.
type DirectionSource interface {
	NextDirection(e *Entity, dt float64) (dir Direction, ok bool)
}

// Reseeder is implemented by timer-driven sources that restart their timer
// when the direction is changed for them.
type Reseeder interface {
	Reseed()
}

// IntentSteering turns the latest external intent vector into a direction.
// Each intent is consumed once.
type IntentSteering struct {
	x, y    float64
	pending bool
}

func NewIntentSteering() *IntentSteering {
	return &IntentSteering{}
}

func (s *IntentSteering) SetIntent(x, y float64) {
	s.x, s.y = x, y
	s.pending = true
}

func (s *IntentSteering) NextDirection(_ *Entity, _ float64) (Direction, bool) {
	if !s.pending {
		return Direction{}, false
	}
	s.pending = false
	return DirectionFromIntent(s.x, s.y)
}

// WanderSteering changes direction at random intervals drawn from the
// selector, never reversing.
type WanderSteering struct {
	selector *DirectionSelector
	timer    float64
}

func NewWanderSteering(selector *DirectionSelector) *WanderSteering {
	w := &WanderSteering{selector: selector}
	w.Reseed()
	return w
}

func (w *WanderSteering) NextDirection(e *Entity, dt float64) (Direction, bool) {
	w.timer -= dt
	if w.timer > 0 {
		return Direction{}, false
	}
	w.Reseed()
	return w.selector.PickNewDirection(e.LastDirection), true
}

func (w *WanderSteering) Reseed() {
	w.timer = w.selector.NextInterval()
}

func (w *WanderSteering) Remaining() float64 {
	return w.timer
}
