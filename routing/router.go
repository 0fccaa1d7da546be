package routing

import (
	"fmt"
	"log"
	"slices"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/replication"
	"github.com/sarchlab/oppnet/sim"
)

// A Router moves the messages of one host.
type Router struct {
	*sim.ComponentBase

	id         message.HostID
	timeTeller sim.TimeTeller
	mobile     Mobile
	store      *message.Store
	controller replication.Controller
	filter     NeighborFilter
	ordering   message.Ordering

	links     []Link
	active    *Transfer
	delivered map[string]bool
}

// ID returns the host identifier.
func (r *Router) ID() message.HostID {
	return r.id
}

// Store returns the message buffer of the host.
func (r *Router) Store() *message.Store {
	return r.store
}

// Controller returns the replication controller of the router.
func (r *Router) Controller() replication.Controller {
	return r.controller
}

// Filter returns the neighbor filter of the router.
func (r *Router) Filter() NeighborFilter {
	return r.filter
}

// Mobile returns the movement model of the host.
func (r *Router) Mobile() Mobile {
	return r.mobile
}

// Links returns the current contacts.
func (r *Router) Links() []Link {
	return slices.Clone(r.links)
}

// BufferCapacity returns the size of the message buffer in bytes.
func (r *Router) BufferCapacity() int {
	return r.store.Capacity()
}

// BufferFree returns the number of free bytes in the message buffer.
func (r *Router) BufferFree() int {
	return r.store.Free()
}

// IsTransferring tells if the host is sending or receiving a message.
func (r *Router) IsTransferring() bool {
	return r.active != nil
}

// ActiveTransfer returns the transfer the host takes part in, or nil.
func (r *Router) ActiveTransfer() *Transfer {
	return r.active
}

// HasMessage tells if the host holds the message or has had it delivered.
func (r *Router) HasMessage(id string) bool {
	return r.store.Has(id) || r.delivered[id]
}

// Delivered tells if the host is the destination of the message and has
// received it.
func (r *Router) Delivered(id string) bool {
	return r.delivered[id]
}

// CreateMessage originates a message at this host.
func (r *Router) CreateMessage(
	id string,
	dst message.HostID,
	size int,
	ttl sim.VTimeInSec,
) (*message.Message, error) {
	switch {
	case size <= 0:
		return nil, fmt.Errorf("creating message %s at %s: size %d: %w",
			id, r.id, size, ErrInvalidMessage)
	case dst == r.id:
		return nil, fmt.Errorf("creating message %s at %s: addressed to itself: %w",
			id, r.id, ErrInvalidMessage)
	}

	now := r.timeTeller.CurrentTime()

	m := message.New(id, r.id, dst, size, ttl, now)
	r.controller.Stamp(m, r.filter.NewPayload())

	if err := r.store.Admit(m, now); err != nil {
		return nil, fmt.Errorf("creating message at %s: %w", r.id, err)
	}

	r.hook(HookPosMessageCreated, m, nil)

	return m, nil
}

// ContactUp registers a new contact. A link to a peer that is already a
// contact replaces the old one.
func (r *Router) ContactUp(link Link) {
	peer := link.Peer()

	r.links = slices.DeleteFunc(r.links, func(l Link) bool {
		return l.Peer() == peer
	})
	r.links = append(r.links, link)

	r.filter.ContactUp(r, peer)
	r.hook(HookPosContactUp, peer, nil)
}

// ContactDown removes the contact with the peer and aborts the transfer over
// it, if any.
func (r *Router) ContactDown(peer *Router) {
	n := len(r.links)
	r.links = slices.DeleteFunc(r.links, func(l Link) bool {
		return l.Peer() == peer
	})

	if n == len(r.links) {
		return
	}

	if t := r.active; t != nil && (t.From == peer || t.To == peer) {
		t.From.abort(t, fmt.Errorf("contact %s-%s down: %w",
			r.id, peer.id, ErrStaleTransfer))
	}

	r.filter.ContactDown(r, peer)
	r.hook(HookPosContactDown, peer, nil)
}

// Tick tries to start one transfer. It returns true if a transfer started.
func (r *Router) Tick() bool {
	if r.IsTransferring() || len(r.links) == 0 || r.store.Len() == 0 {
		return false
	}

	if r.tryDeliver() {
		return true
	}

	return r.trySpread()
}

func (r *Router) tryDeliver() bool {
	now := r.timeTeller.CurrentTime()

	msgs := r.store.DeliverableNow(func(id message.HostID) bool {
		return r.linkTo(id) != nil
	})
	r.ordering.Order(msgs)

	for _, m := range msgs {
		if m.Expired(now) {
			r.drop(m, message.ErrExpired)
			continue
		}

		link := r.linkTo(m.Destination)
		if !available(link) || link.Peer().HasMessage(m.ID) {
			continue
		}

		if r.start(m, link, true) {
			return true
		}
	}

	return false
}

func (r *Router) trySpread() bool {
	candidates := r.spreadCandidates()
	if len(candidates) == 0 {
		return false
	}

	links := r.filter.FilterContacts(r, r.availableLinks())
	if len(links) == 0 {
		return false
	}

	r.ordering.Order(candidates)

	for _, m := range candidates {
		for _, link := range links {
			peer := link.Peer()
			final := peer.id == m.Destination

			if peer.HasMessage(m.ID) ||
				(!final && !peer.store.CanAdmit(m.Size)) ||
				!r.filter.Admit(r, m, link) {
				continue
			}

			if r.start(m, link, final) {
				return true
			}
		}
	}

	return false
}

func (r *Router) spreadCandidates() []*message.Message {
	now := r.timeTeller.CurrentTime()
	kind := r.filter.PayloadKind()
	candidates := []*message.Message{}

	for _, m := range r.store.Messages() {
		if m.Expired(now) {
			r.drop(m, message.ErrExpired)
			continue
		}

		if err := r.controller.Validate(m, kind); err != nil {
			r.drop(m, err)
			continue
		}

		if r.controller.CanSpread(m) {
			candidates = append(candidates, m)
		}
	}

	return candidates
}

func (r *Router) availableLinks() []Link {
	links := []Link{}
	for _, l := range r.links {
		if available(l) {
			links = append(links, l)
		}
	}

	return links
}

func (r *Router) linkTo(id message.HostID) Link {
	for _, l := range r.links {
		if l.Peer().id == id {
			return l
		}
	}

	return nil
}

func available(l Link) bool {
	return l != nil && l.IsUp() && !l.Peer().IsTransferring()
}

func (r *Router) start(m *message.Message, link Link, final bool) bool {
	peer := link.Peer()

	t := &Transfer{
		ID:           sim.GetIDGenerator().Generate(),
		Message:      m,
		From:         r,
		To:           peer,
		Link:         link,
		StartTime:    r.timeTeller.CurrentTime(),
		CopiesBefore: m.Copies,
		Final:        final,
	}

	if peer.mobile != nil {
		t.PeerHeading, t.PeerHeadingKnown = peer.mobile.Heading()
	}

	r.store.Pin(m.ID)
	r.active = t
	peer.active = t

	r.hook(HookPosTransferStart, t, nil)

	if err := link.StartTransfer(t); err != nil {
		r.abort(t, fmt.Errorf("starting transfer %s: %w", t.ID, err))
		return false
	}

	return true
}

// TransferDone completes a transfer sent by this router. Completions of
// transfers that were already aborted are ignored.
func (r *Router) TransferDone(t *Transfer) {
	if t.From != r {
		log.Panicf("transfer %s is not sent by %s", t.ID, r.id)
	}

	if !t.IsActive() {
		return
	}

	now := r.timeTeller.CurrentTime()

	var err error
	if t.Final {
		err = t.To.deliver(t, now)
	} else {
		err = t.To.receive(t, now)
	}

	if err != nil {
		r.abort(t, err)

		if t.Message.Expired(now) && r.store.Get(t.Message.ID) == t.Message {
			r.drop(t.Message, message.ErrExpired)
		}

		return
	}

	t.state = transferDone
	r.release(t)
	r.afterSend(t)

	r.hook(HookPosTransferDone, t, nil)
}

func (r *Router) afterSend(t *Transfer) {
	m := r.store.Get(t.Message.ID)
	if m != t.Message {
		return
	}

	if t.Final {
		r.store.Remove(m.ID)
		return
	}

	m.Copies = r.controller.SenderCopies(t.CopiesBefore)
	r.filter.TransferDone(r, t)
}

func (r *Router) receive(t *Transfer, now sim.VTimeInSec) error {
	c := t.Message.Replicate(
		r.controller.ReceiverCopies(t.CopiesBefore),
		r.filter.NewPayload(),
		now,
	)

	if err := r.store.Admit(c, now); err != nil {
		return fmt.Errorf("receiving at %s: %w", r.id, err)
	}

	return nil
}

func (r *Router) deliver(t *Transfer, now sim.VTimeInSec) error {
	if t.Message.Expired(now) {
		return fmt.Errorf("delivering %s to %s: %w",
			t.Message.ID, r.id, message.ErrExpired)
	}

	c := t.Message.Replicate(
		r.controller.ReceiverCopies(t.CopiesBefore), nil, now)

	r.delivered[c.ID] = true
	r.hook(HookPosMessageDelivered, c, t)

	return nil
}

func (r *Router) abort(t *Transfer, err error) {
	if !t.IsActive() {
		return
	}

	t.state = transferAborted
	r.release(t)

	r.hook(HookPosTransferAbort, t, TransferAbort{Transfer: t, Err: err})
}

func (r *Router) release(t *Transfer) {
	r.store.Unpin(t.Message.ID)

	if r.active == t {
		r.active = nil
	}

	if t.To.active == t {
		t.To.active = nil
	}
}

func (r *Router) drop(m *message.Message, err error) {
	if r.store.Remove(m.ID) == nil {
		return
	}

	r.hook(HookPosMessageDropped, m, MessageDrop{Message: m, Err: err})
}

func (r *Router) hook(pos *sim.HookPos, item, detail interface{}) {
	if r.NumHooks() == 0 {
		return
	}

	r.InvokeHook(sim.HookCtx{
		Domain: r,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
