package game

import "github.com/charmbracelet/log"

type MoveOutcome int

const (
	// Idle means the entity kept its position without being blocked.
	Idle MoveOutcome = iota
	Moved
	// Resolved means the tick was spent pushing the entity out of an obstacle.
	Resolved
	// Surrounded means every direction was blocked.
	Surrounded
)

func (o MoveOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Resolved:
		return "resolved"
	case Surrounded:
		return "surrounded"
	}
	return "idle"
}

// ProbeHook observes every direction the controller tests.
type ProbeHook func(e *Entity, dir Direction, blocked bool)

// MovementController moves entities one tick at a time without ever
// committing a position that overlaps an obstacle.
type MovementController struct {
	query     *SpatialQuery
	resolver  *OverlapResolver
	selector  *DirectionSelector
	wallCheck float64
	logger    *log.Logger
	probeHook ProbeHook
}

func NewMovementController(query *SpatialQuery, resolver *OverlapResolver, selector *DirectionSelector, wallCheckDistance float64, logger *log.Logger) *MovementController {
	if logger == nil {
		logger = log.Default()
	}
	if query == nil {
		logger.Warn("Spatial query not set - moving through an empty arena")
		query = NewSpatialQuery(NewArena(DefaultArenaHalfWidth, DefaultArenaHalfHeight), logger)
	}
	if resolver == nil {
		resolver = NewOverlapResolver(query, DefaultSafetyMargin, DefaultFallbackStep, logger)
	}
	if selector == nil {
		selector = NewDirectionSelector(nil, DefaultMinChange, DefaultMaxChange)
	}
	if !(wallCheckDistance > 0) {
		wallCheckDistance = DefaultWallCheck
	}
	return &MovementController{
		query:     query,
		resolver:  resolver,
		selector:  selector,
		wallCheck: wallCheckDistance,
		logger:    logger,
	}
}

func (m *MovementController) SetProbeHook(hook ProbeHook) {
	m.probeHook = hook
}

// Step runs one movement tick for e: memory decay, overlap resolution, then
// steering and the obstacle checks.
func (m *MovementController) Step(e *Entity, dt float64) MoveOutcome {
	if e == nil || !e.Alive() {
		return Idle
	}

	e.Memory.Tick(dt)

	if obstacle, res := m.resolver.pushOut(e); res != Unresolved {
		e.Memory.Remember(obstacle.ID)
		m.logger.Debug("Entity was inside an obstacle", "entity", e.ID, "obstacle", obstacle.ID, "resolution", res)
		return Resolved
	}

	if !(dt > 0) {
		return Idle
	}

	if e.Steering != nil {
		if dir, ok := e.Steering.NextDirection(e, dt); ok && dir.IsCardinal() {
			if e.Kind == Controlled {
				m.ApplyManual(e, dir)
			} else {
				e.Direction = dir
			}
		}
	}

	if !m.blocked(e, e.Direction, dt) {
		return m.move(e, e.Direction, dt)
	}
	return m.findAlternative(e, dt)
}

// ApplyManual validates an externally requested direction. Reversing into the
// last committed direction and turning into a blocked direction are both
// rejected with the current direction left unchanged.
func (m *MovementController) ApplyManual(e *Entity, dir Direction) bool {
	if !dir.IsCardinal() {
		return false
	}
	if dir == e.Direction {
		return true
	}
	if dir == e.LastDirection.Opposite() {
		m.logger.Debug("Manual reversal rejected", "entity", e.ID, "direction", dir)
		return false
	}
	if m.blocked(e, dir, 0) {
		m.logger.Debug("Manual direction blocked", "entity", e.ID, "direction", dir)
		return false
	}
	e.Direction = dir
	return true
}

// WallContact reacts to the contact notifier reporting e touching an
// obstacle. Any real overlap is resolved first, then the entity turns away.
func (m *MovementController) WallContact(e *Entity, obstacleID string) Resolution {
	if e == nil || !e.Alive() {
		return Unresolved
	}
	obstacle, ok := m.query.Obstacle(obstacleID)
	if !ok {
		m.logger.Debug("Contact with unknown obstacle ignored", "entity", e.ID, "obstacle", obstacleID)
		return Unresolved
	}

	e.Memory.Remember(obstacle.ID)

	res := Unresolved
	if m.query.WouldOverlap(e.Position, e.CheckRadius()) {
		res = m.resolver.Resolve(e, obstacle)
	}

	before := e.Direction
	if e.Kind == Autonomous {
		e.Direction = m.selector.PickNewDirection(before)
		m.reseed(e)
		return res
	}

	turn := before.Clockwise()
	if m.selector.Float64() < 0.5 {
		turn = before.CounterClockwise()
	}
	if m.ApplyManual(e, turn) {
		return res
	}
	for _, alt := range alternatives(before) {
		if !m.blocked(e, alt, 0) {
			e.Direction = alt
			return res
		}
	}
	return res
}

// findAlternative handles a blocked direction. Autonomous entities first try a
// fresh random pick; everyone then tries both perpendiculars before the
// reverse.
func (m *MovementController) findAlternative(e *Entity, dt float64) MoveOutcome {
	current := e.Direction

	if e.Kind == Autonomous {
		pick := m.selector.PickNewDirection(current)
		if pick != current && !m.blocked(e, pick, dt) {
			m.reseed(e)
			return m.move(e, pick, dt)
		}
	}

	for _, alt := range alternatives(current) {
		if !m.blocked(e, alt, dt) {
			if e.Kind == Autonomous {
				m.reseed(e)
			}
			return m.move(e, alt, dt)
		}
	}

	m.logger.Debug("Entity surrounded", "entity", e.ID, "x", e.Position.X(), "y", e.Position.Y())
	return Surrounded
}

func alternatives(d Direction) [3]Direction {
	return [3]Direction{d.Clockwise(), d.CounterClockwise(), d.Opposite()}
}

// blocked reports whether moving along dir for dt is unsafe: an obstacle
// ahead, an overlapping next position, or creeping toward a remembered wall.
// A remembered obstacle hit by the forward probe is recorded.
func (m *MovementController) blocked(e *Entity, dir Direction, dt float64) bool {
	result := m.probe(e, dir, dt)
	if m.probeHook != nil {
		m.probeHook(e, dir, result)
	}
	return result
}

func (m *MovementController) probe(e *Entity, dir Direction, dt float64) bool {
	distance := max(m.wallCheck, e.Speed*dt)
	if obstacle, hit := m.query.FirstObstacleAhead(e.Position, dir, distance, e.Extents()); hit {
		e.Memory.Remember(obstacle.ID)
		return true
	}

	travel := e.Speed * dt
	if !(travel > 0) {
		travel = probeBackOffset
	}
	next := e.Position.Add(dir.Vec().Mul(travel))
	if m.query.WouldOverlap(next, e.CheckRadius()) {
		return true
	}

	if e.Memory.Len() > 0 {
		if _, near := m.query.ClearanceViolated(e.Position, next, e.MemoryClearance(), e.Memory.IDs()); near {
			return true
		}
	}
	return false
}

func (m *MovementController) move(e *Entity, dir Direction, dt float64) MoveOutcome {
	e.commit(e.NextPosition(dir, dt), dir)
	return Moved
}

func (m *MovementController) reseed(e *Entity) {
	if r, ok := e.Steering.(Reseeder); ok {
		r.Reseed()
	}
}
