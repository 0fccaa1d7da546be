package message

import (
	"math/bits"
)

// PayloadKind names the routing policy a payload belongs to.
type PayloadKind int

// The payload kinds.
const (
	KindSpread PayloadKind = iota + 1
	KindHistory
)

func (k PayloadKind) String() string {
	switch k {
	case KindSpread:
		return "spread"
	case KindHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Payload is the per-message state owned by the active routing policy. The
// set of implementations is closed.
type Payload interface {
	Kind() PayloadKind
	isPayload()
}

// MaxSectors is the largest number of heading sectors a Sectors set can hold.
const MaxSectors = 8

// Sectors is a set of heading sector ids in [0, MaxSectors).
type Sectors uint8

// Has tells if the sector is in the set.
func (s Sectors) Has(sector int) bool {
	if sector < 0 || sector >= MaxSectors {
		return false
	}

	return s&(1<<uint(sector)) != 0
}

// With returns the set with the sector added.
func (s Sectors) With(sector int) Sectors {
	if sector < 0 || sector >= MaxSectors {
		panic("sector out of range")
	}

	return s | 1<<uint(sector)
}

// Len returns the number of sectors in the set.
func (s Sectors) Len() int {
	return bits.OnesCount8(uint8(s))
}

// List returns the sectors in ascending order.
func (s Sectors) List() []int {
	list := make([]int, 0, s.Len())
	for i := 0; i < MaxSectors; i++ {
		if s.Has(i) {
			list = append(list, i)
		}
	}

	return list
}

// SpreadState records the heading sectors a copy has already been forwarded
// into.
type SpreadState struct {
	Sent Sectors
}

// Kind returns KindSpread.
func (*SpreadState) Kind() PayloadKind { return KindSpread }

func (*SpreadState) isPayload() {}

// HistoryState marks a message routed by contact history. All the state of
// that policy lives on the host.
type HistoryState struct{}

// Kind returns KindHistory.
func (HistoryState) Kind() PayloadKind { return KindHistory }

func (HistoryState) isPayload() {}
