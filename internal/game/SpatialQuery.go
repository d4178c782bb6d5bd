package game

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

const queryPadding = 1e-6

// SpatialQuery answers read-only questions about the obstacle geometry. The
// R-tree only narrows candidates; every answer comes from an exact test.
type SpatialQuery struct {
	tree      *rtreego.Rtree
	obstacles map[string]*Obstacle
	bounded   bool
	innerMin  mgl64.Vec2
	innerMax  mgl64.Vec2
}

func NewSpatialQuery(provider ObstacleProvider, logger *log.Logger) *SpatialQuery {
	if logger == nil {
		logger = log.Default()
	}

	q := &SpatialQuery{
		tree:      rtreego.NewTree(2, 4, 16),
		obstacles: make(map[string]*Obstacle),
	}

	if provider == nil {
		logger.Warn("Obstacle provider not set - using an empty arena")
		return q
	}
	if b, ok := provider.(BoundedProvider); ok {
		q.bounded = true
		q.innerMin, q.innerMax = b.Inner()
	}

	for _, o := range provider.Obstacles() {
		if _, exists := q.obstacles[o.ID]; exists {
			logger.Warn("Duplicate obstacle id ignored", "obstacle", o.ID)
			continue
		}
		obstacle := o
		q.obstacles[obstacle.ID] = &obstacle
		q.tree.Insert(&obstacle)
	}

	return q
}

func (q *SpatialQuery) Obstacle(id string) (Obstacle, bool) {
	o, ok := q.obstacles[id]
	if !ok {
		return Obstacle{}, false
	}
	return *o, true
}

func (q *SpatialQuery) Len() int {
	return len(q.obstacles)
}

// ClampInside keeps a circle of the given radius within the free rectangle.
// On an axis too narrow for the circle the center of that axis is used.
func (q *SpatialQuery) ClampInside(pos mgl64.Vec2, radius float64) mgl64.Vec2 {
	if !q.bounded {
		return pos
	}
	out := pos
	for axis := 0; axis < 2; axis++ {
		lo, hi := q.innerMin[axis]+radius, q.innerMax[axis]-radius
		if lo > hi {
			out[axis] = (q.innerMin[axis] + q.innerMax[axis]) / 2
			continue
		}
		out[axis] = clamp(pos[axis], lo, hi)
	}
	return out
}

// candidates returns obstacles whose bounds touch [min, max], ordered by id.
func (q *SpatialQuery) candidates(min, max mgl64.Vec2) []*Obstacle {
	origin := rtreego.Point{min.X() - queryPadding, min.Y() - queryPadding}
	lengths := []float64{
		max.X() - min.X() + 2*queryPadding,
		max.Y() - min.Y() + 2*queryPadding,
	}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		return nil
	}

	hits := q.tree.SearchIntersect(rect)
	result := make([]*Obstacle, 0, len(hits))
	for _, spatial := range hits {
		if o, ok := spatial.(*Obstacle); ok {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (q *SpatialQuery) ObstacleAhead(pos mgl64.Vec2, dir Direction, probeDistance float64, extents mgl64.Vec2) bool {
	_, hit := q.FirstObstacleAhead(pos, dir, probeDistance, extents)
	return hit
}

// FirstObstacleAhead probes along dir with a ray that starts slightly behind
// pos, then with a shrunken copy of the footprint swept probeDistance forward.
func (q *SpatialQuery) FirstObstacleAhead(pos mgl64.Vec2, dir Direction, probeDistance float64, extents mgl64.Vec2) (Obstacle, bool) {
	if !dir.IsCardinal() || !(probeDistance > 0) {
		return Obstacle{}, false
	}
	step := dir.Vec()

	origin := pos.Sub(step.Mul(probeBackOffset))
	ray := step.Mul(probeDistance + probeBackOffset)
	rayEnd := origin.Add(ray)
	rayMin := mgl64.Vec2{min(origin.X(), rayEnd.X()), min(origin.Y(), rayEnd.Y())}
	rayMax := mgl64.Vec2{max(origin.X(), rayEnd.X()), max(origin.Y(), rayEnd.Y())}
	for _, o := range q.candidates(rayMin, rayMax) {
		if segmentHitsBox(origin, ray, o.Min, o.Max) {
			return *o, true
		}
	}

	half := extents.Mul(probeBoxScale)
	startMin, startMax := pos.Sub(half), pos.Add(half)
	travel := step.Mul(probeDistance)
	endMin, endMax := startMin.Add(travel), startMax.Add(travel)
	sweepMin := mgl64.Vec2{min(startMin.X(), endMin.X()), min(startMin.Y(), endMin.Y())}
	sweepMax := mgl64.Vec2{max(startMax.X(), endMax.X()), max(startMax.Y(), endMax.Y())}
	for _, o := range q.candidates(sweepMin, sweepMax) {
		if boxesOverlap(sweepMin, sweepMax, o.Min, o.Max) {
			return *o, true
		}
	}

	return Obstacle{}, false
}

func (q *SpatialQuery) WouldOverlap(pos mgl64.Vec2, radius float64) bool {
	_, hit := q.OverlappingObstacle(pos, radius)
	return hit
}

// OverlappingObstacle returns the lowest-id obstacle intersecting the circle.
func (q *SpatialQuery) OverlappingObstacle(pos mgl64.Vec2, radius float64) (Obstacle, bool) {
	if !(radius > 0) {
		return Obstacle{}, false
	}
	r := mgl64.Vec2{radius, radius}
	for _, o := range q.candidates(pos.Sub(r), pos.Add(r)) {
		if circleBoxOverlap(pos, radius, o.Min, o.Max) {
			return *o, true
		}
	}
	return Obstacle{}, false
}

// ClearanceViolated reports whether moving from -> to gets closer to one of
// the listed obstacles and ends within clearance of it. Moving along or away
// from a remembered obstacle is never reported.
func (q *SpatialQuery) ClearanceViolated(from, to mgl64.Vec2, clearance float64, ids []string) (Obstacle, bool) {
	for _, id := range ids {
		o, ok := q.obstacles[id]
		if !ok {
			continue
		}
		next := o.ClosestPoint(to).Sub(to).Len()
		if next >= clearance {
			continue
		}
		if next >= o.ClosestPoint(from).Sub(from).Len() {
			continue
		}
		return *o, true
	}
	return Obstacle{}, false
}
