package game

import "github.com/charmbracelet/log"

type Resolution int

const (
	// Unresolved means the entity was not overlapping anything.
	Unresolved Resolution = iota
	ResolvedPush
	ResolvedStep
	// ResolvedBackstep is the last resort and may still leave the entity
	// inside geometry.
	ResolvedBackstep
)

func (r Resolution) String() string {
	switch r {
	case ResolvedPush:
		return "push"
	case ResolvedStep:
		return "step"
	case ResolvedBackstep:
		return "backstep"
	}
	return "unresolved"
}

// OverlapResolver pushes entities out of obstacles they already penetrate. It
// writes positions directly, bypassing the overlap gate used for normal moves.
type OverlapResolver struct {
	query        *SpatialQuery
	safetyMargin float64
	fallbackStep float64
	logger       *log.Logger
}

func NewOverlapResolver(query *SpatialQuery, safetyMargin, fallbackStep float64, logger *log.Logger) *OverlapResolver {
	if logger == nil {
		logger = log.Default()
	}
	if !(safetyMargin >= 0) {
		safetyMargin = DefaultSafetyMargin
	}
	if !(fallbackStep > 0) {
		fallbackStep = DefaultFallbackStep
	}
	return &OverlapResolver{
		query:        query,
		safetyMargin: safetyMargin,
		fallbackStep: fallbackStep,
		logger:       logger,
	}
}

// Resolve moves e out of obstacle. The push is tried first, then small fixed
// steps in the fallback order, then a step back along the last direction.
// Every position it writes stays inside the arena's free rectangle.
func (r *OverlapResolver) Resolve(e *Entity, obstacle Obstacle) Resolution {
	closest := obstacle.ClosestPoint(e.Position)
	away := e.Position.Sub(closest)
	dist := away.Len()

	pushDir := Up.Vec()
	if dist >= overlapEpsilon {
		pushDir = away.Mul(1 / dist)
	}
	if push := e.Radius() - dist + r.safetyMargin; push > 0 {
		e.Position = r.query.ClampInside(e.Position.Add(pushDir.Mul(push)), e.Radius())
	}

	if !r.query.WouldOverlap(e.Position, e.CheckRadius()) {
		return ResolvedPush
	}

	for _, dir := range fallbackOrder {
		candidate := r.query.ClampInside(e.Position.Add(dir.Vec().Mul(r.fallbackStep)), e.Radius())
		if !r.query.WouldOverlap(candidate, e.CheckRadius()) {
			e.Position = candidate
			return ResolvedStep
		}
	}

	e.Position = r.query.ClampInside(e.Position.Sub(e.LastDirection.Vec().Mul(2*r.fallbackStep)), e.Radius())
	r.logger.Warn("Overlap fallback exhausted, stepped back",
		"entity", e.ID,
		"obstacle", obstacle.ID,
		"x", e.Position.X(),
		"y", e.Position.Y(),
		"stillOverlapping", r.query.WouldOverlap(e.Position, e.CheckRadius()),
	)
	return ResolvedBackstep
}

// pushOut is used when the caller already knows the entity is inside
// something but not which obstacle.
func (r *OverlapResolver) pushOut(e *Entity) (Obstacle, Resolution) {
	obstacle, hit := r.query.OverlappingObstacle(e.Position, e.CheckRadius())
	if !hit {
		return Obstacle{}, Unresolved
	}
	return obstacle, r.Resolve(e, obstacle)
}
