package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction is a cardinal unit step. Y grows upward.
type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: 1}
	Down  = Direction{Dx: 0, Dy: -1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
)

// Directions is the sampling order used by DirectionSelector.
var Directions = []Direction{Up, Down, Right, Left}

// fallbackOrder is the order overlap resolution tries its fixed steps in.
var fallbackOrder = []Direction{Up, Right, Down, Left}

func (d Direction) Opposite() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

func (d Direction) Clockwise() Direction {
	return Direction{Dx: d.Dy, Dy: -d.Dx}
}

func (d Direction) CounterClockwise() Direction {
	return Direction{Dx: -d.Dy, Dy: d.Dx}
}

func (d Direction) IsCardinal() bool {
	return d == Up || d == Down || d == Left || d == Right
}

func (d Direction) IsZero() bool {
	return d.Dx == 0 && d.Dy == 0
}

func (d Direction) Vec() mgl64.Vec2 {
	return mgl64.Vec2{float64(d.Dx), float64(d.Dy)}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// DirectionFromIntent reduces an intent vector to its dominant axis. Equal
// magnitudes, including the zero vector, yield no direction.
func DirectionFromIntent(x, y float64) (Direction, bool) {
	ax, ay := math.Abs(x), math.Abs(y)
	switch {
	case ax > ay:
		if x > 0 {
			return Right, true
		}
		return Left, true
	case ay > ax:
		if y > 0 {
			return Up, true
		}
		return Down, true
	}
	return Direction{}, false
}
