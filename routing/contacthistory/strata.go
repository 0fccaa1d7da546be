package contacthistory

import (
	"maps"
	"slices"

	"github.com/sarchlab/oppnet/message"
)

// Strata is what a host knows about the hosts it can reach.
type Strata struct {
	// FirstHop counts the direct encounters with each host.
	FirstHop map[message.HostID]int

	// MultiHop holds the hosts learned from contacts. A host is never in both
	// FirstHop and MultiHop.
	MultiHop map[message.HostID]bool

	// Mules holds the encountered hosts with huge buffers.
	Mules map[message.HostID]bool
}

// NewStrata creates empty strata.
func NewStrata() Strata {
	return Strata{
		FirstHop: make(map[message.HostID]int),
		MultiHop: make(map[message.HostID]bool),
		Mules:    make(map[message.HostID]bool),
	}
}

// Knows tells if the host is in any stratum.
func (s Strata) Knows(id message.HostID) bool {
	_, first := s.FirstHop[id]
	return first || s.MultiHop[id] || s.Mules[id]
}

// Tracks tells if the host is in FirstHop or MultiHop.
func (s Strata) Tracks(id message.HostID) bool {
	_, first := s.FirstHop[id]
	return first || s.MultiHop[id]
}

// Reachable returns every host in any stratum, sorted.
func (s Strata) Reachable() []message.HostID {
	set := make(map[message.HostID]bool)
	for id := range s.FirstHop {
		set[id] = true
	}

	maps.Copy(set, s.MultiHop)
	maps.Copy(set, s.Mules)

	return slices.Sorted(maps.Keys(set))
}

// Clone returns a deep copy of the strata.
func (s Strata) Clone() Strata {
	return Strata{
		FirstHop: maps.Clone(s.FirstHop),
		MultiHop: maps.Clone(s.MultiHop),
		Mules:    maps.Clone(s.Mules),
	}
}

func (s Strata) addFirstHop(id message.HostID) {
	delete(s.MultiHop, id)
	s.FirstHop[id]++
}

func (s Strata) addMultiHop(self message.HostID, peer Strata) {
	for _, id := range peer.Reachable() {
		if id == self || s.Tracks(id) {
			continue
		}

		s.MultiHop[id] = true
	}
}
