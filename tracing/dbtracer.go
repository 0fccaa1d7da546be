package tracing

import (
	"sort"
	"sync"

	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
	"github.com/tebeka/atexit"
)

// The tables written by a DBTracer.
const (
	TableMessages   = "messages"
	TableTransfers  = "transfers"
	TableDeliveries = "deliveries"
	TableDrops      = "drops"
)

// The outcomes of a recorded transfer.
const (
	OutcomeDone       = "done"
	OutcomeAborted    = "aborted"
	OutcomeUnfinished = "unfinished"
)

// MessageEntry is a row of the messages table.
type MessageEntry struct {
	ID          string
	Host        string
	Source      string
	Destination string
	Size        int
	CreatedAt   float64
	TTL         float64
}

// TransferEntry is a row of the transfers table.
type TransferEntry struct {
	ID           string
	Message      string
	FromHost     string
	ToHost       string
	Final        bool
	CopiesBefore int
	StartTime    float64
	EndTime      float64
	Outcome      string
	Reason       string
}

// DeliveryEntry is a row of the deliveries table.
type DeliveryEntry struct {
	Message     string
	Host        string
	Source      string
	CreatedAt   float64
	DeliveredAt float64
	Latency     float64
	Hops        int
}

// DropEntry is a row of the drops table.
type DropEntry struct {
	Message string
	Host    string
	Reason  string
	Time    float64
}

// DBTracer is a tracer that stores message events into a data recorder.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	startTime, endTime sim.VTimeInSec

	transfers  map[string]*routing.Transfer
	terminated bool
}

// NewDBTracer creates a new DBTracer and the tables it writes.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(TableMessages, MessageEntry{})
	dataRecorder.CreateTable(TableTransfers, TransferEntry{})
	dataRecorder.CreateTable(TableDeliveries, DeliveryEntry{})
	dataRecorder.CreateTable(TableDrops, DropEntry{})

	t := &DBTracer{
		timeTeller: timeTeller,
		backend:    dataRecorder,
		transfers:  make(map[string]*routing.Transfer),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SetTimeRange limits the recorded events to the time range. A zero bound
// is open.
func (t *DBTracer) SetTimeRange(startTime, endTime sim.VTimeInSec) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = startTime
	t.endTime = endTime
}

func (t *DBTracer) inRange(time sim.VTimeInSec) bool {
	if t.startTime > 0 && time < t.startTime {
		return false
	}

	if t.endTime > 0 && time > t.endTime {
		return false
	}

	return true
}

// MessageCreated records a created message.
func (t *DBTracer) MessageCreated(where string, m *message.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inRange(m.CreatedAt) {
		return
	}

	t.backend.InsertData(TableMessages, MessageEntry{
		ID:          m.ID,
		Host:        where,
		Source:      string(m.Source),
		Destination: string(m.Destination),
		Size:        m.Size,
		CreatedAt:   float64(m.CreatedAt),
		TTL:         float64(m.TTL),
	})
}

// TransferStarted remembers a transfer until it ends.
func (t *DBTracer) TransferStarted(tr *routing.Transfer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.transfers[tr.ID] = tr
}

// TransferDone records a completed transfer.
func (t *DBTracer) TransferDone(tr *routing.Transfer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endTransfer(tr, OutcomeDone, "")
}

// TransferAborted records an aborted transfer.
func (t *DBTracer) TransferAborted(tr *routing.Transfer, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	reason := ""
	if err != nil {
		reason = err.Error()
	}

	t.endTransfer(tr, OutcomeAborted, reason)
}

func (t *DBTracer) endTransfer(tr *routing.Transfer, outcome, reason string) {
	delete(t.transfers, tr.ID)

	now := t.timeTeller.CurrentTime()
	if !t.inRange(now) {
		return
	}

	t.backend.InsertData(TableTransfers, TransferEntry{
		ID:           tr.ID,
		Message:      tr.Message.ID,
		FromHost:     tr.From.Name(),
		ToHost:       tr.To.Name(),
		Final:        tr.Final,
		CopiesBefore: tr.CopiesBefore,
		StartTime:    float64(tr.StartTime),
		EndTime:      float64(now),
		Outcome:      outcome,
		Reason:       reason,
	})
}

// MessageDelivered records a delivery.
func (t *DBTracer) MessageDelivered(where string, m *message.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.timeTeller.CurrentTime()
	if !t.inRange(now) {
		return
	}

	t.backend.InsertData(TableDeliveries, DeliveryEntry{
		Message:     m.ID,
		Host:        where,
		Source:      string(m.Source),
		CreatedAt:   float64(m.CreatedAt),
		DeliveredAt: float64(now),
		Latency:     float64(now - m.CreatedAt),
		Hops:        m.Hops,
	})
}

// MessageDropped records a dropped message.
func (t *DBTracer) MessageDropped(where string, m *message.Message, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.timeTeller.CurrentTime()
	if !t.inRange(now) {
		return
	}

	t.backend.InsertData(TableDrops, DropEntry{
		Message: m.ID,
		Host:    where,
		Reason:  reason,
		Time:    float64(now),
	})
}

// Terminate records the transfers that are still in flight and flushes the
// backend.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}

	t.terminated = true

	ids := make([]string, 0, len(t.transfers))
	for id := range t.transfers {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		t.endTransfer(t.transfers[id], OutcomeUnfinished, "")
	}

	t.backend.Flush()
}
