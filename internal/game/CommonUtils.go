package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// closestPointOnBox returns the point of the box [min, max] closest to p. A
// point inside the box is its own closest point.
func closestPointOnBox(p, min, max mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		clamp(p.X(), min.X(), max.X()),
		clamp(p.Y(), min.Y(), max.Y()),
	}
}

func circleBoxOverlap(center mgl64.Vec2, radius float64, min, max mgl64.Vec2) bool {
	closest := closestPointOnBox(center, min, max)
	return closest.Sub(center).Len() < radius
}

func boxesOverlap(aMin, aMax, bMin, bMax mgl64.Vec2) bool {
	return aMin.X() < bMax.X() && aMax.X() > bMin.X() &&
		aMin.Y() < bMax.Y() && aMax.Y() > bMin.Y()
}

// segmentHitsBox is a slab test of the segment from -> from+delta against the
// box. Touching the boundary counts as a hit.
func segmentHitsBox(from, delta, min, max mgl64.Vec2) bool {
	tMin, tMax := 0.0, 1.0
	for axis := 0; axis < 2; axis++ {
		o, d := from[axis], delta[axis]
		if math.Abs(d) < 1e-12 {
			if o < min[axis] || o > max[axis] {
				return false
			}
			continue
		}
		t1 := (min[axis] - o) / d
		t2 := (max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

func circlesOverlap(a mgl64.Vec2, ra float64, b mgl64.Vec2, rb float64) bool {
	return a.Sub(b).Len() < ra+rb
}
