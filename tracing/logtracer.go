package tracing

import (
	"log"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
)

// LogTracer prints message events.
type LogTracer struct {
	sim.LogHookBase

	timeTeller sim.TimeTeller
}

// NewLogTracer returns a LogTracer that writes into the logger.
func NewLogTracer(timeTeller sim.TimeTeller, logger *log.Logger) *LogTracer {
	t := new(LogTracer)
	t.Logger = logger
	t.timeTeller = timeTeller

	return t
}

func (t *LogTracer) now() float64 {
	return float64(t.timeTeller.CurrentTime())
}

// MessageCreated logs a created message.
func (t *LogTracer) MessageCreated(where string, m *message.Message) {
	t.Printf("%.3f, %s, create, %s", t.now(), where, m)
}

// TransferStarted logs a started transfer.
func (t *LogTracer) TransferStarted(tr *routing.Transfer) {
	t.Printf("%.3f, %s, start, %s", t.now(), tr.From.Name(), tr)
}

// TransferDone logs a completed transfer.
func (t *LogTracer) TransferDone(tr *routing.Transfer) {
	t.Printf("%.3f, %s, done, %s", t.now(), tr.From.Name(), tr)
}

// TransferAborted logs an aborted transfer.
func (t *LogTracer) TransferAborted(tr *routing.Transfer, err error) {
	t.Printf("%.3f, %s, abort, %s, %v", t.now(), tr.From.Name(), tr, err)
}

// MessageDelivered logs a delivery.
func (t *LogTracer) MessageDelivered(where string, m *message.Message) {
	t.Printf("%.3f, %s, deliver, %s, hops=%d", t.now(), where, m.ID, m.Hops)
}

// MessageDropped logs a dropped message.
func (t *LogTracer) MessageDropped(where string, m *message.Message, reason string) {
	t.Printf("%.3f, %s, drop, %s, %s", t.now(), where, m.ID, reason)
}
