// Package routing implements the controlled-replication forwarding engine.
//
// A Router belongs to one host. On every tick it first tries to deliver
// messages to their destinations among the current contacts, and otherwise
// hands copies of messages that still have copies to spare to the contacts
// selected by its NeighborFilter. Only one transfer can be active on a host at
// a time.
package routing

import (
	"errors"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/sim"
)

// Mobile reports the movement of a host.
type Mobile interface {
	// Heading returns the direction of travel in radians in [0, 2π). The
	// second return value is false if the host is not moving toward a next
	// waypoint.
	Heading() (float64, bool)

	// Speed returns the current speed of the host.
	Speed() float64
}

// A Link is a live contact from the local host to a peer.
type Link interface {
	// Peer returns the router at the other end of the link.
	Peer() *Router

	// IsUp tells if the hosts are still in contact.
	IsUp() bool

	// StartTransfer hands the bytes of the transfer to the host. The host
	// calls TransferDone on the sending router when the bytes arrive.
	StartTransfer(t *Transfer) error
}

// A NeighborFilter decides which contacts receive which messages. Each router
// owns its own filter instance.
type NeighborFilter interface {
	// PayloadKind returns the kind of per-message state the filter uses.
	PayloadKind() message.PayloadKind

	// NewPayload returns the payload of a new or newly received copy.
	NewPayload() message.Payload

	// ContactUp and ContactDown update the bookkeeping of the filter.
	ContactUp(self, peer *Router)
	ContactDown(self, peer *Router)

	// FilterContacts returns the links that are eligible to receive relayed
	// copies.
	FilterContacts(self *Router, links []Link) []Link

	// Admit tells if the message may be relayed over the link.
	Admit(self *Router, m *message.Message, link Link) bool

	// TransferDone updates the bookkeeping of the sender after a relayed
	// copy is handed off.
	TransferDone(self *Router, t *Transfer)
}

// ErrInvalidMessage is returned when a message to create has no positive size
// or is addressed to the host creating it.
var ErrInvalidMessage = errors.New("invalid message")

// ErrStaleTransfer marks a transfer that was aborted because the contact went
// down, the message left a store, or the receiver could not take it.
var ErrStaleTransfer = errors.New("stale transfer")

// Hook positions invoked by a Router.
var (
	HookPosMessageCreated   = &sim.HookPos{Name: "Message Created"}
	HookPosMessageDelivered = &sim.HookPos{Name: "Message Delivered"}
	HookPosMessageDropped   = &sim.HookPos{Name: "Message Dropped"}
	HookPosTransferStart    = &sim.HookPos{Name: "Transfer Start"}
	HookPosTransferDone     = &sim.HookPos{Name: "Transfer Done"}
	HookPosTransferAbort    = &sim.HookPos{Name: "Transfer Abort"}
	HookPosContactUp        = &sim.HookPos{Name: "Contact Up"}
	HookPosContactDown      = &sim.HookPos{Name: "Contact Down"}
)
