package tracing

import (
	"sync"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
)

// Stats summarizes the fate of the messages of a simulation.
type Stats struct {
	Created   int
	Started   int
	Relayed   int
	Aborted   int
	Delivered int
	Dropped   map[string]int

	TotalLatency float64
	TotalHops    int
}

// DeliveryRatio returns the fraction of created messages that reached their
// destination.
func (s Stats) DeliveryRatio() float64 {
	if s.Created == 0 {
		return 0
	}

	return float64(s.Delivered) / float64(s.Created)
}

// AverageLatency returns the mean time from creation to delivery.
func (s Stats) AverageLatency() float64 {
	if s.Delivered == 0 {
		return 0
	}

	return s.TotalLatency / float64(s.Delivered)
}

// AverageHops returns the mean number of hops of delivered messages.
func (s Stats) AverageHops() float64 {
	if s.Delivered == 0 {
		return 0
	}

	return float64(s.TotalHops) / float64(s.Delivered)
}

// OverheadRatio returns the number of relays per delivered message, not
// counting the final hop.
func (s Stats) OverheadRatio() float64 {
	if s.Delivered == 0 {
		return 0
	}

	return float64(s.Relayed-s.Delivered) / float64(s.Delivered)
}

// StatsTracer counts message events.
type StatsTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	stats      Stats
}

// NewStatsTracer creates a StatsTracer.
func NewStatsTracer(timeTeller sim.TimeTeller) *StatsTracer {
	return &StatsTracer{
		timeTeller: timeTeller,
		stats:      Stats{Dropped: make(map[string]int)},
	}
}

// Stats returns a snapshot of the counters.
func (t *StatsTracer) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats
	s.Dropped = make(map[string]int, len(t.stats.Dropped))

	for k, v := range t.stats.Dropped {
		s.Dropped[k] = v
	}

	return s
}

// MessageCreated counts a created message.
func (t *StatsTracer) MessageCreated(_ string, _ *message.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Created++
}

// TransferStarted counts a started transfer.
func (t *StatsTracer) TransferStarted(_ *routing.Transfer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Started++
}

// TransferDone counts a completed transfer.
func (t *StatsTracer) TransferDone(_ *routing.Transfer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Relayed++
}

// TransferAborted counts an aborted transfer.
func (t *StatsTracer) TransferAborted(_ *routing.Transfer, _ error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Aborted++
}

// MessageDelivered counts a delivery and its latency and hops.
func (t *StatsTracer) MessageDelivered(_ string, m *message.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Delivered++
	t.stats.TotalLatency += float64(t.timeTeller.CurrentTime() - m.CreatedAt)
	t.stats.TotalHops += m.Hops
}

// MessageDropped counts a dropped message by reason.
func (t *StatsTracer) MessageDropped(_ string, _ *message.Message, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Dropped[reason]++
}
