package routing

import (
	"fmt"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/sim"
)

type transferState int

const (
	transferActive transferState = iota
	transferDone
	transferAborted
)

// A Transfer is the hand-off of one message copy over one link.
type Transfer struct {
	ID        string
	Message   *message.Message
	From, To  *Router
	Link      Link
	StartTime sim.VTimeInSec

	// CopiesBefore is the sender's copy count when the transfer started.
	CopiesBefore int

	// Final is true if the receiver is the destination of the message.
	Final bool

	// PeerHeading is the heading of the receiver when the transfer started.
	PeerHeading      float64
	PeerHeadingKnown bool

	state transferState
}

// IsActive tells if the transfer has neither completed nor been aborted.
func (t *Transfer) IsActive() bool {
	return t.state == transferActive
}

// IsAborted tells if the transfer has been aborted.
func (t *Transfer) IsAborted() bool {
	return t.state == transferAborted
}

func (t *Transfer) String() string {
	return fmt.Sprintf("%s: %s %s->%s", t.ID, t.Message.ID, t.From.ID(), t.To.ID())
}

// TransferAbort is the detail of HookPosTransferAbort.
type TransferAbort struct {
	Transfer *Transfer
	Err      error
}

// MessageDrop is the detail of HookPosMessageDropped.
type MessageDrop struct {
	Message *message.Message
	Err     error
}
