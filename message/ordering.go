package message

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
)

// An Ordering puts the candidate messages of a host into the order in which
// they are offered to contacts.
type Ordering interface {
	Order(msgs []*Message)
}

// ComparatorOrdering orders messages with a stable sort on the comparator.
type ComparatorOrdering func(a, b *Message) int

// Order sorts msgs in place.
func (c ComparatorOrdering) Order(msgs []*Message) {
	slices.SortStableFunc(msgs, c)
}

// FIFO offers the message received earliest first.
var FIFO = ComparatorOrdering(func(a, b *Message) int {
	if c := cmp.Compare(a.ReceivedAt, b.ReceivedAt); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
})

// SmallestFirst offers the smallest message first, breaking ties by FIFO.
var SmallestFirst = ComparatorOrdering(func(a, b *Message) int {
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}

	return FIFO(a, b)
})

// RandomOrdering shuffles the messages. The messages are put in FIFO order
// before shuffling so that a seeded run is reproducible.
type RandomOrdering struct {
	rng *rand.Rand
}

// NewRandomOrdering creates a RandomOrdering with its own seeded generator.
func NewRandomOrdering(seed int64) *RandomOrdering {
	return &RandomOrdering{rng: rand.New(rand.NewSource(seed))}
}

// Order shuffles msgs in place.
func (o *RandomOrdering) Order(msgs []*Message) {
	FIFO.Order(msgs)
	o.rng.Shuffle(len(msgs), func(i, j int) {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	})
}

// QueueMode names an ordering in configuration.
type QueueMode string

// The queue modes.
const (
	QueueFIFO          QueueMode = "fifo"
	QueueSmallestFirst QueueMode = "smallest"
	QueueRandom        QueueMode = "random"
)

// OrderingFor returns the ordering of a queue mode.
func OrderingFor(mode QueueMode, seed int64) (Ordering, error) {
	switch mode {
	case QueueFIFO, "":
		return FIFO, nil
	case QueueSmallestFirst:
		return SmallestFirst, nil
	case QueueRandom:
		return NewRandomOrdering(seed), nil
	default:
		return nil, fmt.Errorf("unknown queue mode %q", mode)
	}
}
