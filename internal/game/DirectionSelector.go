package game

import "math/rand"

// DirectionSelector samples cardinal directions and wander intervals from a
// single owned random source.
type DirectionSelector struct {
	rng         *rand.Rand
	minInterval float64
	maxInterval float64
}

func NewDirectionSelector(rng *rand.Rand, minInterval, maxInterval float64) *DirectionSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if minInterval > maxInterval {
		minInterval, maxInterval = maxInterval, minInterval
	}
	return &DirectionSelector{rng: rng, minInterval: minInterval, maxInterval: maxInterval}
}

func (s *DirectionSelector) PickRandomCardinal() Direction {
	return Directions[s.rng.Intn(len(Directions))]
}

// PickNewDirection never returns the reverse of current. Sampling is capped at
// maxDirectionDraws; past the cap the first allowed direction in Directions
// order is returned.
func (s *DirectionSelector) PickNewDirection(current Direction) Direction {
	reverse := current.Opposite()
	for i := 0; i < maxDirectionDraws; i++ {
		d := s.PickRandomCardinal()
		if d != reverse {
			return d
		}
	}
	for _, d := range Directions {
		if d != reverse {
			return d
		}
	}
	return Up
}

// NextInterval draws a wander timer uniformly from [min, max].
func (s *DirectionSelector) NextInterval() float64 {
	if s.maxInterval <= s.minInterval {
		return s.minInterval
	}
	return s.minInterval + s.rng.Float64()*(s.maxInterval-s.minInterval)
}

// Float64 exposes the shared random source to steering helpers that need a
// coin flip without owning another generator.
func (s *DirectionSelector) Float64() float64 {
	return s.rng.Float64()
}
