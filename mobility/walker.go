package mobility

import (
	"log"
	"math"
)

// A Leg is a straight movement that takes Duration seconds.
type Leg struct {
	From, To Coord
	Duration float64
}

// Speed returns the speed along the leg.
func (l Leg) Speed() float64 {
	if math.IsInf(l.Duration, 1) {
		return 0
	}

	return l.From.Distance(l.To) / l.Duration
}

// A Planner decides where a host goes next.
type Planner interface {
	NextLeg(from Coord) Leg
}

// A Walker moves a host along the legs produced by a Planner.
type Walker struct {
	planner Planner
	leg     Leg
	elapsed float64
}

// NewWalker creates a walker that starts at the given position.
func NewWalker(start Coord, planner Planner) *Walker {
	w := &Walker{planner: planner}
	w.startLeg(start)

	return w
}

func (w *Walker) startLeg(from Coord) {
	w.leg = w.planner.NextLeg(from)
	w.elapsed = 0

	if !(w.leg.Duration > 0) {
		log.Panicf("leg from %s must last a positive time, got %g",
			from, w.leg.Duration)
	}
}

// Position returns the current position.
func (w *Walker) Position() Coord {
	if math.IsInf(w.leg.Duration, 1) {
		return w.leg.From
	}

	return w.leg.From.Lerp(w.leg.To, w.elapsed/w.leg.Duration)
}

// Heading returns the direction toward the end of the current leg.
func (w *Walker) Heading() (float64, bool) {
	return Heading(w.Position(), w.leg.To)
}

// Speed returns the speed along the current leg.
func (w *Walker) Speed() float64 {
	return w.leg.Speed()
}

// Leg returns the current leg.
func (w *Walker) Leg() Leg {
	return w.leg
}

// Move advances the walker by dt seconds.
func (w *Walker) Move(dt float64) {
	for dt > 0 {
		left := w.leg.Duration - w.elapsed
		if dt < left {
			w.elapsed += dt
			return
		}

		dt -= left
		w.startLeg(w.leg.To)
	}
}
