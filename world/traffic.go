package world

import (
	"math/rand"

	"github.com/sarchlab/oppnet/sim"
)

// Traffic describes the generated messages. Messages are created between
// random pairs of non-mule nodes.
type Traffic struct {
	MinInterval, MaxInterval sim.VTimeInSec
	MinSize, MaxSize         int
	TTL                      sim.VTimeInSec
	Prefix                   string
}

func (t Traffic) enabled() bool {
	return t.MaxInterval > 0 && t.MaxSize > 0
}

func (t Traffic) interval(rng *rand.Rand) sim.VTimeInSec {
	span := float64(t.MaxInterval - t.MinInterval)
	return t.MinInterval + sim.VTimeInSec(rng.Float64()*span)
}

func (t Traffic) size(rng *rand.Rand) int {
	return t.MinSize + rng.Intn(t.MaxSize-t.MinSize+1)
}
