package world

import (
	"fmt"

	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
)

// A connection is a radio contact between two nodes. At most one transfer is
// in flight on a connection.
type connection struct {
	world   *World
	a, b    *Node
	up      bool
	pending *TransferDoneEvent
}

// link is one direction of a connection.
type link struct {
	conn *connection
	peer *Node
}

func (l *link) Peer() *routing.Router {
	return l.peer.router
}

func (l *link) IsUp() bool {
	return l.conn.up
}

func (l *link) StartTransfer(t *routing.Transfer) error {
	if !l.conn.up {
		return fmt.Errorf("connection %s-%s is down",
			l.conn.a.Name(), l.conn.b.Name())
	}

	if l.conn.pending != nil {
		return fmt.Errorf("connection %s-%s is busy",
			l.conn.a.Name(), l.conn.b.Name())
	}

	w := l.conn.world
	duration := sim.VTimeInSec(float64(t.Message.Size) / w.transmitSpeed)
	evt := &TransferDoneEvent{
		EventBase: sim.NewEventBase(w.CurrentTime()+duration, w),
		Transfer:  t,
		conn:      l.conn,
	}

	l.conn.pending = evt
	w.Engine.Schedule(evt)

	return nil
}

// TransferDoneEvent marks the arrival of the last byte of a transfer.
type TransferDoneEvent struct {
	*sim.EventBase

	Transfer *routing.Transfer
	conn     *connection
}
