// Package message defines the messages carried by hosts and the bounded store
// that holds them.
package message

import (
	"fmt"

	"github.com/sarchlab/oppnet/sim"
)

// HostID identifies a host. It carries no addressing meaning.
type HostID string

// A Message is a piece of application data that travels from its source to
// its destination by being copied from host to host.
//
// Every host holds its own *Message for the same ID. Copies and Payload of a
// host's copy are only ever mutated by that host.
type Message struct {
	ID          string
	Source      HostID
	Destination HostID
	Size        int

	// TTL is the lifetime of the message counted from CreatedAt. A
	// non-positive TTL never expires.
	TTL        sim.VTimeInSec
	CreatedAt  sim.VTimeInSec
	ReceivedAt sim.VTimeInSec
	Hops       int

	// Copies is the number of copies this host may still hand out, itself
	// included.
	Copies  int
	Payload Payload
}

// New creates a message without replication state. The replication
// controller stamps the copy count and payload before the message is stored.
func New(
	id string,
	src, dst HostID,
	size int,
	ttl sim.VTimeInSec,
	now sim.VTimeInSec,
) *Message {
	return &Message{
		ID:          id,
		Source:      src,
		Destination: dst,
		Size:        size,
		TTL:         ttl,
		CreatedAt:   now,
		ReceivedAt:  now,
	}
}

// ExpiresAt returns the time after which the message is dropped. The second
// return value is false if the message never expires.
func (m *Message) ExpiresAt() (sim.VTimeInSec, bool) {
	if m.TTL <= 0 {
		return 0, false
	}

	return m.CreatedAt + m.TTL, true
}

// Expired tells if the message has outlived its TTL at the given time.
func (m *Message) Expired(now sim.VTimeInSec) bool {
	expiresAt, ok := m.ExpiresAt()
	return ok && now >= expiresAt
}

// Replicate creates the copy that a receiving host stores. The copy shares
// the identity of m but owns its own copy count and payload.
func (m *Message) Replicate(
	copies int,
	payload Payload,
	now sim.VTimeInSec,
) *Message {
	c := *m
	c.Copies = copies
	c.Payload = payload
	c.ReceivedAt = now
	c.Hops = m.Hops + 1

	return &c
}

func (m *Message) String() string {
	return fmt.Sprintf("%s[%s->%s, %dB, copies=%d]",
		m.ID, m.Source, m.Destination, m.Size, m.Copies)
}
