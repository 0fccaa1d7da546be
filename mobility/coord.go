// Package mobility moves hosts across a rectangular area.
package mobility

import (
	"fmt"
	"math"
	"math/rand"
)

// Coord is a position in meters.
type Coord struct {
	X, Y float64
}

// Distance returns the euclidean distance between two positions.
func (c Coord) Distance(o Coord) float64 {
	return math.Hypot(o.X-c.X, o.Y-c.Y)
}

// Lerp returns the position at fraction f of the way from c to o.
func (c Coord) Lerp(o Coord, f float64) Coord {
	return Coord{
		X: c.X + (o.X-c.X)*f,
		Y: c.Y + (o.Y-c.Y)*f,
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
}

// Heading returns the direction from one position to another in radians in
// [0, 2π). It returns false if the positions are the same.
func Heading(from, to Coord) (float64, bool) {
	rise := to.Y - from.Y
	run := to.X - from.X

	if rise == 0 && run == 0 {
		return 0, false
	}

	h := math.Atan2(rise, run)
	if h < 0 {
		h += 2 * math.Pi
	}

	if h >= 2*math.Pi {
		h = 0
	}

	return h, true
}

// Area is the rectangle [0, Width] x [0, Height].
type Area struct {
	Width, Height float64
}

// Contains tells if the position is inside the area.
func (a Area) Contains(c Coord) bool {
	return c.X >= 0 && c.X <= a.Width && c.Y >= 0 && c.Y <= a.Height
}

// Clamp returns the closest position inside the area.
func (a Area) Clamp(c Coord) Coord {
	return Coord{
		X: math.Min(math.Max(c.X, 0), a.Width),
		Y: math.Min(math.Max(c.Y, 0), a.Height),
	}
}

// RandomCoord returns a position drawn uniformly from the area.
func (a Area) RandomCoord(rng *rand.Rand) Coord {
	return Coord{
		X: rng.Float64() * a.Width,
		Y: rng.Float64() * a.Height,
	}
}
