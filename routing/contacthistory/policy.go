// Package contacthistory provides a neighbor filter that forwards messages to
// contacts that met the destination more often or hold better knowledge of
// it, taking the buffer pressure of both hosts into account.
package contacthistory

import (
	"log"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
)

// Config holds the parameters of a Policy.
type Config struct {
	// LowBufferFactor is the capacity/free ratio above which a buffer runs
	// low.
	LowBufferFactor float64

	// HighBufferFactor is the capacity/free ratio below which a buffer has
	// plenty of headroom.
	HighBufferFactor float64

	// MuleBufferThreshold is the buffer capacity, in bytes, from which a host
	// counts as a data mule.
	MuleBufferThreshold int
}

// DefaultConfig returns the parameters used when none are configured.
func DefaultConfig() Config {
	return Config{
		LowBufferFactor:     4,
		HighBufferFactor:    2,
		MuleBufferThreshold: 1_000_000_000,
	}
}

// A Policy keeps the contact history of one host.
type Policy struct {
	cfg    Config
	strata Strata
}

// NewPolicy creates a Policy with empty history.
func NewPolicy(cfg Config) *Policy {
	if cfg.LowBufferFactor <= 0 || cfg.HighBufferFactor <= 0 {
		log.Panicf("buffer factors must be positive, got low %g high %g",
			cfg.LowBufferFactor, cfg.HighBufferFactor)
	}

	return &Policy{
		cfg:    cfg,
		strata: NewStrata(),
	}
}

// Config returns the parameters of the policy.
func (p *Policy) Config() Config {
	return p.cfg
}

// Strata returns a copy of the history.
func (p *Policy) Strata() Strata {
	return p.strata.Clone()
}

// PayloadKind returns message.KindHistory.
func (p *Policy) PayloadKind() message.PayloadKind {
	return message.KindHistory
}

// NewPayload returns the history payload.
func (p *Policy) NewPayload() message.Payload {
	return message.HistoryState{}
}

// IsMule tells if a host has a buffer large enough to be a data mule.
func (p *Policy) IsMule(r *routing.Router) bool {
	return r.BufferCapacity() >= p.cfg.MuleBufferThreshold
}

// ContactUp records the encounter and learns what the peer can reach.
func (p *Policy) ContactUp(self, peer *routing.Router) {
	if p.IsMule(peer) {
		p.strata.Mules[peer.ID()] = true
	}

	p.strata.addFirstHop(peer.ID())
	p.strata.addMultiHop(self.ID(), strataOf(peer))
}

// ContactDown does nothing. The history outlives the contact.
func (p *Policy) ContactDown(_, _ *routing.Router) {}

// FilterContacts keeps every contact. Decisions are taken per message.
func (p *Policy) FilterContacts(
	_ *routing.Router,
	links []routing.Link,
) []routing.Link {
	return links
}

// Admit tells if the peer is a better carrier for the message than the
// local host.
func (p *Policy) Admit(
	self *routing.Router,
	m *message.Message,
	link routing.Link,
) bool {
	peer := link.Peer()
	peerStrata := strataOf(peer)
	dst := m.Destination

	if p.IsMule(peer) && peerStrata.Knows(dst) {
		return true
	}

	if !p.strata.Knows(dst) && peerStrata.Knows(dst) {
		return true
	}

	if !p.pressureFavors(self, peer) {
		return false
	}

	peerCount, peerFirst := peerStrata.FirstHop[dst]
	selfCount, selfFirst := p.strata.FirstHop[dst]

	if peerFirst && selfFirst && peerCount >= selfCount {
		return true
	}

	return peerFirst && p.strata.MultiHop[dst]
}

// pressureFavors tells if the peer has plenty of headroom while the local
// host runs low.
func (p *Policy) pressureFavors(self, peer *routing.Router) bool {
	return RunningHigh(peer.BufferCapacity(), peer.BufferFree(),
		p.cfg.HighBufferFactor) &&
		RunningLow(self.BufferCapacity(), self.BufferFree(),
			p.cfg.LowBufferFactor)
}

// TransferDone does nothing.
func (p *Policy) TransferDone(_ *routing.Router, _ *routing.Transfer) {}

// strataOf returns the history of a peer, or empty strata if the peer does
// not run this policy.
func strataOf(r *routing.Router) Strata {
	if p, ok := r.Filter().(*Policy); ok {
		return p.strata
	}

	return NewStrata()
}

var _ routing.NeighborFilter = (*Policy)(nil)
