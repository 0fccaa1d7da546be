package mobility

import (
	"log"
	"math"
	"math/rand"
)

// GaussMarkovParams configures a Gauss-Markov planner.
type GaussMarkovParams struct {
	// Alpha in [0, 1] tunes the memory of the process. 0 is a random walk and
	// 1 is linear motion.
	Alpha         float64
	MeanSpeed     float64
	SpeedVariance float64
	PhaseVariance float64

	// Interval is the duration of each leg in seconds.
	Interval float64

	// EdgeDistance is the width of the border zone in which the mean
	// direction is steered back toward the center of the area.
	EdgeDistance float64

	SpeedSeed int64
	PhaseSeed int64
}

// DefaultGaussMarkovParams returns commonly used parameters.
func DefaultGaussMarkovParams() GaussMarkovParams {
	return GaussMarkovParams{
		Alpha:         0.34,
		MeanSpeed:     1.0,
		SpeedVariance: 0.5,
		PhaseVariance: 1.0,
		Interval:      10,
		EdgeDistance:  200,
	}
}

// GaussMarkov plans legs whose speed and direction are correlated with the
// previous leg.
type GaussMarkov struct {
	params GaussMarkovParams
	area   Area

	speed         float64
	direction     float64
	meanDirection float64

	speedRNG *rand.Rand
	phaseRNG *rand.Rand
}

// NewGaussMarkov creates a planner. The initial direction is drawn from rng.
func NewGaussMarkov(
	params GaussMarkovParams,
	area Area,
	rng *rand.Rand,
) *GaussMarkov {
	if params.Alpha < 0 || params.Alpha > 1 {
		log.Panicf("alpha must be in [0, 1], got %g", params.Alpha)
	}

	if params.Interval <= 0 {
		log.Panicf("interval must be positive, got %g", params.Interval)
	}

	return &GaussMarkov{
		params:        params,
		area:          area,
		speed:         params.MeanSpeed,
		direction:     rng.Float64() * 2 * math.Pi,
		meanDirection: rng.Float64() * 2 * math.Pi,
		speedRNG:      rand.New(rand.NewSource(params.SpeedSeed)),
		phaseRNG:      rand.New(rand.NewSource(params.PhaseSeed)),
	}
}

// NextLeg moves in the current direction at the current speed for one
// interval, then draws the next speed and direction.
func (g *GaussMarkov) NextLeg(from Coord) Leg {
	g.steer(from)

	speed := math.Max(g.speed, 0)
	dist := speed * g.params.Interval
	to := g.area.Clamp(Coord{
		X: from.X + dist*math.Cos(g.direction),
		Y: from.Y + dist*math.Sin(g.direction),
	})

	g.speed = g.next(g.speed, g.params.MeanSpeed,
		g.params.SpeedVariance, g.speedRNG)
	g.direction = g.next(g.direction, g.meanDirection,
		g.params.PhaseVariance, g.phaseRNG)

	return Leg{From: from, To: to, Duration: g.params.Interval}
}

func (g *GaussMarkov) next(
	prev, mean, variance float64,
	rng *rand.Rand,
) float64 {
	a := g.params.Alpha

	return a*prev +
		(1-a)*mean +
		math.Sqrt(variance)*math.Sqrt(1-a*a)*rng.NormFloat64()
}

// steer points the mean direction toward the center when the host is in one
// of the eight border zones.
func (g *GaussMarkov) steer(c Coord) {
	e := g.params.EdgeDistance
	left := c.X < e
	right := c.X > g.area.Width-e
	bottom := c.Y < e
	top := c.Y > g.area.Height-e

	switch {
	case left && bottom:
		g.meanDirection = math.Pi / 4
	case left && top:
		g.meanDirection = 7 * math.Pi / 4
	case right && top:
		g.meanDirection = 5 * math.Pi / 4
	case right && bottom:
		g.meanDirection = 3 * math.Pi / 4
	case left:
		g.meanDirection = 0
	case right:
		g.meanDirection = math.Pi
	case bottom:
		g.meanDirection = math.Pi / 2
	case top:
		g.meanDirection = 3 * math.Pi / 2
	}
}

// MeanDirection returns the direction the process currently drifts toward.
func (g *GaussMarkov) MeanDirection() float64 {
	return g.meanDirection
}
