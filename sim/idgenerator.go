package sim

import (
	"strconv"
	"sync/atomic"
)

var idGenerator IDGenerator = &sequentialIDGenerator{}

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// GetIDGenerator returns the ID generator shared by the simulation. IDs are
// sequential, so runs with the same seed produce the same IDs.
func GetIDGenerator() IDGenerator {
	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(idNumber, 10)
}
