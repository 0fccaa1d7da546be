package routing

import (
	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/replication"
	"github.com/sarchlab/oppnet/sim"
)

// A Builder can build routers.
type Builder struct {
	timeTeller  sim.TimeTeller
	mobile      Mobile
	bufferSize  int
	dropPolicy  message.DropPolicy
	controller  replication.Controller
	filter      NeighborFilter
	ordering    message.Ordering
	initialized bool
}

// MakeBuilder returns a Builder with a 5 MB buffer, FIFO ordering, and binary
// spraying of 6 copies.
func MakeBuilder() Builder {
	return Builder{
		bufferSize:  5 * 1024 * 1024,
		dropPolicy:  message.DropOldest,
		controller:  replication.NewController(6, replication.Binary),
		ordering:    message.FIFO,
		initialized: true,
	}
}

// WithTimeTeller sets the clock the router reads.
func (b Builder) WithTimeTeller(t sim.TimeTeller) Builder {
	b.timeTeller = t
	return b
}

// WithMobile sets the movement model of the host.
func (b Builder) WithMobile(m Mobile) Builder {
	b.mobile = m
	return b
}

// WithBufferSize sets the size of the message buffer in bytes.
func (b Builder) WithBufferSize(bytes int) Builder {
	b.bufferSize = bytes
	return b
}

// WithDropPolicy sets which message is evicted first when the buffer is full.
func (b Builder) WithDropPolicy(p message.DropPolicy) Builder {
	b.dropPolicy = p
	return b
}

// WithController sets the replication controller.
func (b Builder) WithController(c replication.Controller) Builder {
	b.controller = c
	return b
}

// WithFilter sets the neighbor filter. Filters keep per-host state and must
// not be shared between routers.
func (b Builder) WithFilter(f NeighborFilter) Builder {
	b.filter = f
	return b
}

// WithOrdering sets the order in which messages are considered.
func (b Builder) WithOrdering(o message.Ordering) Builder {
	b.ordering = o
	return b
}

// Build creates a router for the host.
func (b Builder) Build(name string, id message.HostID) *Router {
	if !b.initialized {
		panic("builder must be created with MakeBuilder")
	}

	if b.timeTeller == nil {
		panic("time teller is not set")
	}

	if b.filter == nil {
		panic("neighbor filter is not set")
	}

	r := &Router{
		ComponentBase: sim.NewComponentBase(name),
		id:            id,
		timeTeller:    b.timeTeller,
		mobile:        b.mobile,
		controller:    b.controller,
		filter:        b.filter,
		ordering:      b.ordering,
		delivered:     make(map[string]bool),
	}
	r.store = message.NewStore(name+".Buffer", b.bufferSize, b.dropPolicy)

	return r
}
