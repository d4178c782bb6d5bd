package game

import (
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

// Obstacle is an immobile axis-aligned wall segment.
type Obstacle struct {
	ID  string
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func NewObstacle(id string, min, max mgl64.Vec2) Obstacle {
	if min.X() > max.X() {
		min[0], max[0] = max[0], min[0]
	}
	if min.Y() > max.Y() {
		min[1], max[1] = max[1], min[1]
	}
	return Obstacle{ID: id, Min: min, Max: max}
}

// Bounds implements rtreego.Spatial. Flat walls get a minimal thickness so the
// rectangle stays valid for the tree.
func (o *Obstacle) Bounds() rtreego.Rect {
	w := o.Max.X() - o.Min.X()
	h := o.Max.Y() - o.Min.Y()
	rect, _ := rtreego.NewRect(rtreego.Point{o.Min.X(), o.Min.Y()}, []float64{nonZero(w), nonZero(h)})
	return rect
}

func (o Obstacle) Center() mgl64.Vec2 {
	return o.Min.Add(o.Max).Mul(0.5)
}

func (o Obstacle) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	return closestPointOnBox(p, o.Min, o.Max)
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return 1e-6
	}
	return v
}

// ObstacleProvider exposes the static arena geometry.
type ObstacleProvider interface {
	Obstacles() []Obstacle
}

// BoundedProvider is an ObstacleProvider that also knows the free rectangle
// inside its border.
type BoundedProvider interface {
	ObstacleProvider
	Inner() (min, max mgl64.Vec2)
}

// Arena is a bounded rectangle enclosed by four border walls and split by a
// few interior partitions.
type Arena struct {
	Min      mgl64.Vec2
	Max      mgl64.Vec2
	innerMin mgl64.Vec2
	innerMax mgl64.Vec2
	passage  float64
	walls    []Obstacle
}

func NewArena(halfWidth, halfHeight float64, walls ...Obstacle) *Arena {
	a := &Arena{
		Min:     mgl64.Vec2{-halfWidth, -halfHeight},
		Max:     mgl64.Vec2{halfWidth, halfHeight},
		passage: 2 * min(halfWidth, halfHeight),
	}
	a.innerMin, a.innerMax = a.Min, a.Max
	for _, w := range walls {
		a.AddObstacle(w)
	}
	return a
}

// NewWalledArena builds the default layout: border walls of the given
// thickness sitting just inside the bounds, plus two vertical and one
// horizontal partition with gaps wide enough to pass.
func NewWalledArena(halfWidth, halfHeight, thickness float64) *Arena {
	a := NewArena(halfWidth, halfHeight)
	w, h, t := halfWidth, halfHeight, thickness

	for _, o := range []Obstacle{
		NewObstacle("wall-top", mgl64.Vec2{-w, h - t}, mgl64.Vec2{w, h}),
		NewObstacle("wall-bottom", mgl64.Vec2{-w, -h}, mgl64.Vec2{w, -h + t}),
		NewObstacle("wall-left", mgl64.Vec2{-w, -h}, mgl64.Vec2{-w + t, h}),
		NewObstacle("wall-right", mgl64.Vec2{w - t, -h}, mgl64.Vec2{w, h}),
		NewObstacle("partition-west", mgl64.Vec2{-w / 2, -h / 3}, mgl64.Vec2{-w/2 + t, h - t}),
		NewObstacle("partition-east", mgl64.Vec2{w / 2, -h + t}, mgl64.Vec2{w/2 + t, h / 3}),
		NewObstacle("partition-center", mgl64.Vec2{-w / 6, -h / 2}, mgl64.Vec2{w / 6, -h/2 + t}),
	} {
		a.AddObstacle(o)
	}

	a.innerMin = a.Min.Add(mgl64.Vec2{t, t})
	a.innerMax = a.Max.Sub(mgl64.Vec2{t, t})
	// gaps around the partitions, vertical then horizontal
	a.passage = min(
		2*h/3-t,
		h/2-t,
		w/2-t,
		w/3-t,
		w/2-2*t,
	)
	return a
}

func (a *Arena) Obstacles() []Obstacle {
	out := make([]Obstacle, len(a.walls))
	copy(out, a.walls)
	return out
}

// AddObstacle places an extra wall. It does not narrow Passage.
func (a *Arena) AddObstacle(o Obstacle) {
	a.walls = append(a.walls, o)
}

// Inner is the rectangle left free by the border walls.
func (a *Arena) Inner() (mgl64.Vec2, mgl64.Vec2) {
	return a.innerMin, a.innerMax
}

// Passage is the width of the narrowest gap an entity must fit through.
func (a *Arena) Passage() float64 {
	return a.passage
}

func (a *Arena) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a *Arena) Contains(p mgl64.Vec2) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() && p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y()
}
