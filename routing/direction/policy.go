// Package direction provides a neighbor filter that spreads message copies
// into as many distinct travel directions as possible.
package direction

import (
	"log"
	"math"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
)

// SectorOf returns the sector a heading falls in when the circle is split
// into k equal half-open sectors. The heading is normalized into [0, 2π)
// first.
func SectorOf(heading float64, k int) int {
	if k < 1 {
		log.Panicf("sector count must be positive, got %d", k)
	}

	heading = math.Mod(heading, 2*math.Pi)
	if heading < 0 {
		heading += 2 * math.Pi
	}

	sector := int(math.Floor(heading / (2 * math.Pi / float64(k))))
	if sector > k-1 {
		sector = k - 1
	}

	if sector < 0 {
		sector = 0
	}

	return sector
}

// A Policy offers a message to a contact only if the contact travels in a
// sector the local copy has not been sent into.
type Policy struct {
	sectors int
}

// NewPolicy creates a Policy that splits the circle into the given number of
// sectors.
func NewPolicy(sectors int) *Policy {
	if sectors < 1 || sectors > message.MaxSectors {
		log.Panicf("direction sectors must be in [1, %d], got %d",
			message.MaxSectors, sectors)
	}

	return &Policy{sectors: sectors}
}

// Sectors returns the number of sectors.
func (p *Policy) Sectors() int {
	return p.sectors
}

// PayloadKind returns message.KindSpread.
func (p *Policy) PayloadKind() message.PayloadKind {
	return message.KindSpread
}

// NewPayload returns an empty spread state.
func (p *Policy) NewPayload() message.Payload {
	return &message.SpreadState{}
}

// ContactUp does nothing.
func (p *Policy) ContactUp(_, _ *routing.Router) {}

// ContactDown does nothing.
func (p *Policy) ContactDown(_, _ *routing.Router) {}

// FilterContacts keeps the contacts that head in a materially different
// direction or move faster than the local host. Contacts are skipped if
// either heading is unknown.
func (p *Policy) FilterContacts(
	self *routing.Router,
	links []routing.Link,
) []routing.Link {
	if self.Mobile() == nil {
		return nil
	}

	selfHeading, ok := self.Mobile().Heading()
	if !ok {
		return nil
	}

	selfSpeed := self.Mobile().Speed()
	minDeviation := math.Pi / float64(p.sectors)

	admitted := []routing.Link{}
	for _, l := range links {
		peer := l.Peer().Mobile()
		if peer == nil {
			continue
		}

		peerHeading, ok := peer.Heading()
		if !ok {
			continue
		}

		deviation := math.Abs(selfHeading - peerHeading)
		if deviation > minDeviation || peer.Speed() > selfSpeed {
			admitted = append(admitted, l)
		}
	}

	return admitted
}

// Admit tells if the sector of the contact's heading is still open for the
// message.
func (p *Policy) Admit(
	_ *routing.Router,
	m *message.Message,
	link routing.Link,
) bool {
	state, ok := m.Payload.(*message.SpreadState)
	if !ok {
		return false
	}

	peer := link.Peer().Mobile()
	if peer == nil {
		return false
	}

	heading, ok := peer.Heading()
	if !ok {
		return false
	}

	return !state.Sent.Has(SectorOf(heading, p.sectors))
}

// TransferDone marks the sector of the receiver as sent on the local copy.
func (p *Policy) TransferDone(_ *routing.Router, t *routing.Transfer) {
	if !t.PeerHeadingKnown {
		return
	}

	state, ok := t.Message.Payload.(*message.SpreadState)
	if !ok {
		return
	}

	state.Sent = state.Sent.With(SectorOf(t.PeerHeading, p.sectors))
}

var _ routing.NeighborFilter = (*Policy)(nil)
