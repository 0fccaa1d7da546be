// Package replication implements the copy-count arithmetic of spray-and-wait
// style forwarding.
package replication

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/oppnet/message"
)

// ErrMissingReplicationState marks a message that lacks the copy count or the
// payload the active policy expects. Such a message was not created by a
// router of this network.
var ErrMissingReplicationState = errors.New("missing replication state")

// Mode selects how copies are split on hand-off.
type Mode int

// The replication modes.
const (
	// Binary hands ceil(n/2) copies to the receiver and keeps floor(n/2).
	Binary Mode = iota
	// SingleCopy hands exactly one copy to the receiver.
	SingleCopy
)

func (m Mode) String() string {
	switch m {
	case Binary:
		return "binary"
	case SingleCopy:
		return "single"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// A Controller owns the copy count of the messages of one host.
type Controller struct {
	initialCopies int
	mode          Mode
}

// NewController creates a controller. It panics if initialCopies is less than
// one.
func NewController(initialCopies int, mode Mode) Controller {
	if initialCopies < 1 {
		log.Panicf("initial copies must be at least 1, got %d", initialCopies)
	}

	return Controller{
		initialCopies: initialCopies,
		mode:          mode,
	}
}

// InitialCopies returns the copy count of newly created messages.
func (c Controller) InitialCopies() int {
	return c.initialCopies
}

// Mode returns the replication mode.
func (c Controller) Mode() Mode {
	return c.mode
}

// Stamp gives a newly created message its initial copy count and policy
// payload.
func (c Controller) Stamp(m *message.Message, payload message.Payload) {
	m.Copies = c.initialCopies
	m.Payload = payload
}

// CanSpread tells if the message may be handed to a relay. A message with a
// single copy left is only delivered to its destination.
func (c Controller) CanSpread(m *message.Message) bool {
	return m.Copies > 1
}

// ReceiverCopies returns the copy count of the receiver's copy when the
// sender held n copies before the split.
func (c Controller) ReceiverCopies(n int) int {
	if n <= 0 {
		return 0
	}

	if c.mode == Binary {
		return (n + 1) / 2
	}

	return 1
}

// SenderCopies returns the copy count the sender keeps after a completed
// hand-off of a message it held n copies of.
func (c Controller) SenderCopies(n int) int {
	if n <= 0 {
		return 0
	}

	if c.mode == Binary {
		return n / 2
	}

	return n - 1
}

// Validate checks that the message carries a copy count and a payload of the
// expected kind.
func (c Controller) Validate(m *message.Message, kind message.PayloadKind) error {
	if m.Copies < 1 {
		return fmt.Errorf("message %s has no copy count: %w",
			m.ID, ErrMissingReplicationState)
	}

	if m.Payload == nil {
		return fmt.Errorf("message %s has no %s payload: %w",
			m.ID, kind, ErrMissingReplicationState)
	}

	if m.Payload.Kind() != kind {
		return fmt.Errorf("message %s has a %s payload, want %s: %w",
			m.ID, m.Payload.Kind(), kind, ErrMissingReplicationState)
	}

	return nil
}
