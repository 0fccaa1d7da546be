// Package tracing turns the hooks of routers, stores, and the world into
// records, statistics, and log lines.
package tracing

import (
	"errors"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/replication"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
)

// NamedHookable represent something both have a name and can be hooked
type NamedHookable interface {
	sim.Named
	sim.Hookable
}

// A Tracer consumes the life events of messages.
type Tracer interface {
	MessageCreated(where string, m *message.Message)
	TransferStarted(t *routing.Transfer)
	TransferDone(t *routing.Transfer)
	TransferAborted(t *routing.Transfer, err error)
	MessageDelivered(where string, m *message.Message)
	MessageDropped(where string, m *message.Message, reason string)
}

// CollectTrace lets the tracer collect the events of a domain.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	domain.AcceptHook(&traceHook{t: tracer})
}

// The reasons reported for dropped messages.
const (
	ReasonExpired   = "expired"
	ReasonMalformed = "malformed"
	ReasonEvicted   = "evicted"
	ReasonRejected  = "rejected"
	ReasonOther     = "other"
)

func reasonOf(err error) string {
	switch {
	case errors.Is(err, message.ErrExpired):
		return ReasonExpired
	case errors.Is(err, replication.ErrMissingReplicationState):
		return ReasonMalformed
	case errors.Is(err, message.ErrBufferFull),
		errors.Is(err, routing.ErrInvalidMessage):
		return ReasonRejected
	default:
		return ReasonOther
	}
}
