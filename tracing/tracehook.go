package tracing

import (
	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
	"github.com/sarchlab/oppnet/world"
)

// A traceHook forwards the events of a domain to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	where := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		where = named.Name()
	}

	switch ctx.Pos {
	case routing.HookPosMessageCreated:
		h.t.MessageCreated(where, ctx.Item.(*message.Message))
	case routing.HookPosTransferStart:
		h.t.TransferStarted(ctx.Item.(*routing.Transfer))
	case routing.HookPosTransferDone:
		h.t.TransferDone(ctx.Item.(*routing.Transfer))
	case routing.HookPosTransferAbort:
		abort := ctx.Detail.(routing.TransferAbort)
		h.t.TransferAborted(abort.Transfer, abort.Err)
	case routing.HookPosMessageDelivered:
		h.t.MessageDelivered(where, ctx.Item.(*message.Message))
	case routing.HookPosMessageDropped:
		drop := ctx.Detail.(routing.MessageDrop)
		h.t.MessageDropped(where, drop.Message, reasonOf(drop.Err))
	case message.HookPosMessageEvicted:
		reason := string(ctx.Detail.(message.DropReason))
		h.t.MessageDropped(where, ctx.Item.(*message.Message), reason)
	case world.HookPosMessageRejected:
		h.t.MessageDropped(where, ctx.Item.(*message.Message), ReasonRejected)
	}
}
