package contacthistory

import "math"

// ratio returns capacity/free. A full buffer has an infinite ratio.
func ratio(capacity, free int) float64 {
	if free <= 0 {
		return math.Inf(1)
	}

	return float64(capacity) / float64(free)
}

// RunningLow tells if a buffer has little headroom left.
func RunningLow(capacity, free int, lowFactor float64) bool {
	return ratio(capacity, free) > lowFactor
}

// RunningHigh tells if a buffer has plenty of headroom.
func RunningHigh(capacity, free int, highFactor float64) bool {
	return ratio(capacity, free) < highFactor
}
