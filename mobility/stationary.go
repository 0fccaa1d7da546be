package mobility

import "math"

// Stationary keeps a host where it is.
type Stationary struct{}

// NextLeg returns a leg that never ends.
func (Stationary) NextLeg(from Coord) Leg {
	return Leg{From: from, To: from, Duration: math.Inf(1)}
}
