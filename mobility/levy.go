package mobility

import (
	"log"
	"math"
	"math/rand"
)

// LevyRNG draws samples from a symmetric Levy alpha-stable distribution with
// scale C.
type LevyRNG struct {
	rng   *rand.Rand
	c     float64
	alpha float64
}

// NewLevyRNG creates a generator. Alpha must be in (0, 2].
func NewLevyRNG(rng *rand.Rand, c, alpha float64) *LevyRNG {
	if alpha <= 0 || alpha > 2 {
		log.Panicf("levy alpha must be in (0, 2], got %g", alpha)
	}

	return &LevyRNG{rng: rng, c: c, alpha: alpha}
}

// Float64 returns the next sample.
func (l *LevyRNG) Float64() float64 {
	u := math.Pi * (l.rng.Float64() - 0.5)

	if l.alpha == 1 {
		return l.c * math.Tan(u)
	}

	v := 0.0
	for v == 0 {
		v = -math.Log(1 - l.rng.Float64())
	}

	if l.alpha == 2 {
		return l.c * 2 * math.Sin(u) * math.Sqrt(v)
	}

	t := math.Sin(l.alpha*u) / math.Pow(math.Cos(u), 1/l.alpha)
	s := math.Pow(math.Cos((1-l.alpha)*u)/v, (1-l.alpha)/l.alpha)

	return l.c * t * s
}

// LevyWalkParams configures a Levy walk.
type LevyWalkParams struct {
	Alpha    float64
	Scale    float64
	MinSpeed float64
	MaxSpeed float64

	// MinStep and MaxStep bound the flight length in meters.
	MinStep float64
	MaxStep float64
}

// DefaultLevyWalkParams returns commonly used parameters.
func DefaultLevyWalkParams() LevyWalkParams {
	return LevyWalkParams{
		Alpha:    1.5,
		Scale:    10,
		MinSpeed: 0.5,
		MaxSpeed: 1.5,
		MinStep:  1,
		MaxStep:  1000,
	}
}

// LevyWalk plans flights in uniformly random directions with heavy-tailed
// lengths.
type LevyWalk struct {
	params LevyWalkParams
	area   Area
	rng    *rand.Rand
	levy   *LevyRNG
}

// NewLevyWalk creates a planner.
func NewLevyWalk(params LevyWalkParams, area Area, rng *rand.Rand) *LevyWalk {
	if params.MinSpeed <= 0 || params.MaxSpeed < params.MinSpeed {
		log.Panicf("levy walk speeds must satisfy 0 < min <= max, got %g, %g",
			params.MinSpeed, params.MaxSpeed)
	}

	if params.MinStep <= 0 || params.MaxStep < params.MinStep {
		log.Panicf("levy walk steps must satisfy 0 < min <= max, got %g, %g",
			params.MinStep, params.MaxStep)
	}

	return &LevyWalk{
		params: params,
		area:   area,
		rng:    rng,
		levy:   NewLevyRNG(rng, params.Scale, params.Alpha),
	}
}

// NextLeg flies from the position in a random direction.
func (w *LevyWalk) NextLeg(from Coord) Leg {
	step := math.Abs(w.levy.Float64())
	step = math.Min(math.Max(step, w.params.MinStep), w.params.MaxStep)

	direction := w.rng.Float64() * 2 * math.Pi
	to := w.area.Clamp(Coord{
		X: from.X + step*math.Cos(direction),
		Y: from.Y + step*math.Sin(direction),
	})

	speed := w.params.MinSpeed +
		w.rng.Float64()*(w.params.MaxSpeed-w.params.MinSpeed)

	dist := from.Distance(to)
	if dist == 0 {
		return Leg{From: from, To: to, Duration: w.params.MinStep / speed}
	}

	return Leg{From: from, To: to, Duration: dist / speed}
}
