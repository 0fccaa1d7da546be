package message

import (
	"fmt"
	"log"
	"slices"

	"github.com/sarchlab/oppnet/sim"
)

// HookPosMessageEvicted marks a message being removed from a store to make
// room for another one, or because it expired.
var HookPosMessageEvicted = &sim.HookPos{Name: "Message Evicted"}

// DropPolicy selects which resident message is evicted first.
type DropPolicy int

// The supported drop policies.
const (
	DropOldest DropPolicy = iota
	DropLargest
)

func (p DropPolicy) String() string {
	switch p {
	case DropOldest:
		return "oldest"
	case DropLargest:
		return "largest"
	default:
		return fmt.Sprintf("DropPolicy(%d)", int(p))
	}
}

// DropReason explains why a message left a store without being forwarded.
type DropReason string

// The drop reasons reported with HookPosMessageEvicted.
const (
	ReasonEvicted DropReason = "evicted"
	ReasonExpired DropReason = "expired"
)

// A Store is the bounded message buffer of a host.
type Store struct {
	sim.HookableBase

	name       string
	capacity   int
	used       int
	dropPolicy DropPolicy

	messages []*Message
	index    map[string]*Message
	pinned   map[string]int
}

// NewStore creates a store that holds at most capacity bytes.
func NewStore(name string, capacity int, dropPolicy DropPolicy) *Store {
	sim.NameMustBeValid(name)

	if capacity <= 0 {
		log.Panicf("store %s must have a positive capacity", name)
	}

	return &Store{
		name:       name,
		capacity:   capacity,
		dropPolicy: dropPolicy,
		index:      make(map[string]*Message),
		pinned:     make(map[string]int),
	}
}

// Name returns the name of the store.
func (s *Store) Name() string {
	return s.name
}

// Capacity returns the size of the store in bytes.
func (s *Store) Capacity() int {
	return s.capacity
}

// Used returns the number of bytes taken by resident messages.
func (s *Store) Used() int {
	return s.used
}

// Free returns the number of bytes available without eviction.
func (s *Store) Free() int {
	return s.capacity - s.used
}

// Len returns the number of resident messages.
func (s *Store) Len() int {
	return len(s.messages)
}

// Has tells if a message with the ID is resident.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns the resident message with the ID, or nil.
func (s *Store) Get(id string) *Message {
	return s.index[id]
}

// Messages returns the resident messages in admission order. The returned
// slice can be modified by the caller.
func (s *Store) Messages() []*Message {
	return slices.Clone(s.messages)
}

// CanAdmit tells if a message of the given size would fit after evicting
// every evictable message.
func (s *Store) CanAdmit(size int) bool {
	if size > s.capacity {
		return false
	}

	return s.Free()+s.evictableBytes() >= size
}

// Admit stores the message, evicting resident messages according to the drop
// policy if needed. If the message cannot fit even after evicting every
// evictable message, ErrBufferFull is returned and nothing is evicted.
func (s *Store) Admit(m *Message, now sim.VTimeInSec) error {
	if m.Expired(now) {
		return fmt.Errorf("admitting %s to %s: %w", m.ID, s.name, ErrExpired)
	}

	if s.Has(m.ID) {
		return fmt.Errorf("admitting %s to %s: %w", m.ID, s.name, ErrDuplicate)
	}

	s.dropExpired(now)

	if !s.CanAdmit(m.Size) {
		return fmt.Errorf("admitting %s (%dB) to %s (%d/%dB): %w",
			m.ID, m.Size, s.name, s.used, s.capacity, ErrBufferFull)
	}

	for s.Free() < m.Size {
		victim := s.nextVictim()
		s.evict(victim, ReasonEvicted)
	}

	s.messages = append(s.messages, m)
	s.index[m.ID] = m
	s.used += m.Size

	return nil
}

// Remove deletes the message from the store without reporting it. It returns
// the removed message, or nil if it was not resident.
func (s *Store) Remove(id string) *Message {
	m, ok := s.index[id]
	if !ok {
		return nil
	}

	s.remove(m)

	return m
}

// Pin protects the message from eviction until a matching Unpin. A message is
// pinned while it is being sent.
func (s *Store) Pin(id string) {
	s.pinned[id]++
}

// Unpin releases one Pin.
func (s *Store) Unpin(id string) {
	n := s.pinned[id]
	if n <= 1 {
		delete(s.pinned, id)
		return
	}

	s.pinned[id] = n - 1
}

// DeliverableNow returns the messages whose destination is a current direct
// contact.
func (s *Store) DeliverableNow(isContact func(HostID) bool) []*Message {
	return s.WithCopiesLeft(func(m *Message) bool {
		return isContact(m.Destination)
	})
}

// WithCopiesLeft returns the messages that satisfy the predicate, in
// admission order.
func (s *Store) WithCopiesLeft(pred func(*Message) bool) []*Message {
	list := []*Message{}
	for _, m := range s.messages {
		if pred(m) {
			list = append(list, m)
		}
	}

	return list
}

func (s *Store) dropExpired(now sim.VTimeInSec) {
	for _, m := range s.Messages() {
		if m.Expired(now) && s.pinned[m.ID] == 0 {
			s.evict(m, ReasonExpired)
		}
	}
}

func (s *Store) evictableBytes() int {
	bytes := 0
	for _, m := range s.messages {
		if s.pinned[m.ID] == 0 {
			bytes += m.Size
		}
	}

	return bytes
}

func (s *Store) nextVictim() *Message {
	var victim *Message

	for _, m := range s.messages {
		if s.pinned[m.ID] > 0 {
			continue
		}

		if victim == nil || s.evictsBefore(m, victim) {
			victim = m
		}
	}

	if victim == nil {
		log.Panicf("store %s has no evictable message", s.name)
	}

	return victim
}

func (s *Store) evictsBefore(a, b *Message) bool {
	if s.dropPolicy == DropLargest && a.Size != b.Size {
		return a.Size > b.Size
	}

	return a.ReceivedAt < b.ReceivedAt
}

func (s *Store) evict(m *Message, reason DropReason) {
	s.remove(m)

	if s.NumHooks() > 0 {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosMessageEvicted,
			Item:   m,
			Detail: reason,
		})
	}
}

func (s *Store) remove(m *Message) {
	i := slices.Index(s.messages, m)
	s.messages = slices.Delete(s.messages, i, i+1)
	delete(s.index, m.ID)
	delete(s.pinned, m.ID)
	s.used -= m.Size
}
