// Package world hosts the routers in a rectangular area. It moves the hosts,
// detects contacts by radio range, times transfers by the transmit speed, and
// generates messages.
package world

import (
	"fmt"
	"log"
	"math/rand"
	"reflect"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/mobility"
	"github.com/sarchlab/oppnet/sim"
)

// HookPosMessageRejected marks a generated message that its source could not
// store. The item is the message and the detail is the error.
var HookPosMessageRejected = &sim.HookPos{Name: "Message Rejected"}

// MessageEvent triggers the generation of a message.
type MessageEvent struct {
	*sim.EventBase
}

// World owns the nodes and the connections between them.
type World struct {
	*sim.TickingComponent

	area          mobility.Area
	transmitRange float64
	transmitSpeed float64
	endTime       sim.VTimeInSec
	traffic       Traffic
	rng           *rand.Rand

	nodes    []*Node
	byName   map[string]*Node
	conns    map[[2]int]*connection
	lastMove sim.VTimeInSec
	nextMsg  int
}

// Nodes returns all the nodes.
func (w *World) Nodes() []*Node {
	return w.nodes
}

// Node returns the node with the name, or nil.
func (w *World) Node(name string) *Node {
	return w.byName[name]
}

// NumConnections returns the number of live contacts.
func (w *World) NumConnections() int {
	return len(w.conns)
}

// EndTime returns the time after which the world stops ticking and
// generating messages.
func (w *World) EndTime() sim.VTimeInSec {
	return w.endTime
}

// Start schedules the first tick and, if traffic is configured, the first
// message.
func (w *World) Start() {
	w.TickNow()

	if w.traffic.enabled() {
		w.scheduleMessage(w.CurrentTime())
	}
}

// Handle processes the events of the world other than ticks.
func (w *World) Handle(e sim.Event) error {
	switch e := e.(type) {
	case *TransferDoneEvent:
		w.completeTransfer(e)
	case *MessageEvent:
		w.generateMessage()
	default:
		log.Panicf("cannot handle event of type %s", reflect.TypeOf(e))
	}

	return nil
}

// Tick moves the nodes, updates the contacts, and lets every router try to
// start a transfer.
func (w *World) Tick() bool {
	now := w.CurrentTime()

	w.move(now)
	w.updateContacts()

	for _, n := range w.nodes {
		n.router.Tick()
	}

	return now < w.endTime
}

func (w *World) move(now sim.VTimeInSec) {
	dt := float64(now - w.lastMove)
	w.lastMove = now

	if dt <= 0 {
		return
	}

	for _, n := range w.nodes {
		n.walker.Move(dt)
	}
}

func (w *World) updateContacts() {
	for i := 0; i < len(w.nodes); i++ {
		for j := i + 1; j < len(w.nodes); j++ {
			a, b := w.nodes[i], w.nodes[j]
			key := [2]int{i, j}
			conn, connected := w.conns[key]
			inRange := a.Position().Distance(b.Position()) <= w.transmitRange

			switch {
			case inRange && !connected:
				w.connect(key, a, b)
			case !inRange && connected:
				w.disconnect(key, conn)
			}
		}
	}
}

func (w *World) connect(key [2]int, a, b *Node) {
	conn := &connection{world: w, a: a, b: b, up: true}
	w.conns[key] = conn

	a.router.ContactUp(&link{conn: conn, peer: b})
	b.router.ContactUp(&link{conn: conn, peer: a})
}

func (w *World) disconnect(key [2]int, conn *connection) {
	conn.up = false
	conn.pending = nil
	delete(w.conns, key)

	conn.a.router.ContactDown(conn.b.router)
	conn.b.router.ContactDown(conn.a.router)
}

func (w *World) completeTransfer(e *TransferDoneEvent) {
	if e.conn.pending != e {
		return
	}

	e.conn.pending = nil
	e.Transfer.From.TransferDone(e.Transfer)
}

func (w *World) scheduleMessage(after sim.VTimeInSec) {
	next := after + w.traffic.interval(w.rng)
	if next > w.endTime {
		return
	}

	w.Engine.Schedule(&MessageEvent{EventBase: sim.NewEventBase(next, w)})
}

func (w *World) generateMessage() {
	now := w.CurrentTime()
	defer w.scheduleMessage(now)

	hosts := w.endpoints()
	if len(hosts) < 2 {
		return
	}

	src := hosts[w.rng.Intn(len(hosts))]
	dst := src
	for dst == src {
		dst = hosts[w.rng.Intn(len(hosts))]
	}

	w.nextMsg++
	id := fmt.Sprintf("%s%d", w.traffic.Prefix, w.nextMsg)
	size := w.traffic.size(w.rng)

	_, err := src.router.CreateMessage(id, dst.router.ID(), size, w.traffic.TTL)
	if err != nil && w.NumHooks() > 0 {
		w.InvokeHook(sim.HookCtx{
			Domain: w,
			Pos:    HookPosMessageRejected,
			Item:   message.New(id, src.router.ID(), dst.router.ID(), size, w.traffic.TTL, now),
			Detail: err,
		})
	}
}

// endpoints returns the nodes that create and consume messages. Mules only
// carry.
func (w *World) endpoints() []*Node {
	hosts := make([]*Node, 0, len(w.nodes))
	for _, n := range w.nodes {
		if !n.mule {
			hosts = append(hosts, n)
		}
	}

	return hosts
}
