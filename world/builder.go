package world

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/mobility"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/sim"
)

// A FilterFactory creates the neighbor filter of one host.
type FilterFactory func() routing.NeighborFilter

// A PlannerFactory creates the movement planner of one host.
type PlannerFactory func(rng *rand.Rand) mobility.Planner

// An OrderingFactory creates the queue ordering of one host.
type OrderingFactory func(rng *rand.Rand) message.Ordering

// Builder can build worlds.
type Builder struct {
	engine         sim.Engine
	freq           sim.Freq
	area           mobility.Area
	hosts          int
	mules          int
	bufferSize     int
	muleBufferSize int
	transmitRange  float64
	transmitSpeed  float64
	endTime        sim.VTimeInSec
	traffic        Traffic
	seed           int64
	routerBuilder  routing.Builder
	filterFactory  FilterFactory
	plannerFactory PlannerFactory

	orderingFactory OrderingFactory
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:           1 * sim.Hz,
		area:           mobility.Area{Width: 2000, Height: 2000},
		hosts:          10,
		bufferSize:     5 * 1024 * 1024,
		muleBufferSize: 1_000_000_000,
		transmitRange:  50,
		transmitSpeed:  250 * 1024,
		endTime:        3600,
		seed:           1,
		routerBuilder:  routing.MakeBuilder(),
		plannerFactory: func(*rand.Rand) mobility.Planner {
			return mobility.Stationary{}
		},
	}
}

// WithEngine sets the engine that runs the world.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets how often the world ticks.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// WithArea sets the size of the world.
func (b Builder) WithArea(a mobility.Area) Builder {
	b.area = a
	return b
}

// WithHosts sets the number of hosts, mules included, and how many of them
// are mules.
func (b Builder) WithHosts(hosts, mules int) Builder {
	b.hosts = hosts
	b.mules = mules
	return b
}

// WithBufferSizes sets the buffer size of regular hosts and of mules.
func (b Builder) WithBufferSizes(host, mule int) Builder {
	b.bufferSize = host
	b.muleBufferSize = mule
	return b
}

// WithTransmitRange sets the radio range in meters.
func (b Builder) WithTransmitRange(r float64) Builder {
	b.transmitRange = r
	return b
}

// WithTransmitSpeed sets the link speed in bytes per second.
func (b Builder) WithTransmitSpeed(s float64) Builder {
	b.transmitSpeed = s
	return b
}

// WithEndTime sets when the world stops ticking.
func (b Builder) WithEndTime(t sim.VTimeInSec) Builder {
	b.endTime = t
	return b
}

// WithTraffic sets the generated messages.
func (b Builder) WithTraffic(t Traffic) Builder {
	b.traffic = t
	return b
}

// WithSeed sets the seed of the random placement and traffic.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRouterBuilder sets how the routers are built.
func (b Builder) WithRouterBuilder(rb routing.Builder) Builder {
	b.routerBuilder = rb
	return b
}

// WithFilterFactory sets how the neighbor filter of each host is created.
func (b Builder) WithFilterFactory(f FilterFactory) Builder {
	b.filterFactory = f
	return b
}

// WithPlannerFactory sets how the movement of each host is planned.
func (b Builder) WithPlannerFactory(f PlannerFactory) Builder {
	b.plannerFactory = f
	return b
}

// WithOrderingFactory gives each host its own queue ordering. Without it the
// ordering of the router builder is used.
func (b Builder) WithOrderingFactory(f OrderingFactory) Builder {
	b.orderingFactory = f
	return b
}

// Build creates the world and its nodes.
func (b Builder) Build(name string) *World {
	b.mustBeValid()

	w := &World{
		area:          b.area,
		transmitRange: b.transmitRange,
		transmitSpeed: b.transmitSpeed,
		endTime:       b.endTime,
		traffic:       b.traffic,
		rng:           rand.New(rand.NewSource(b.seed)),
		byName:        make(map[string]*Node),
		conns:         make(map[[2]int]*connection),
	}
	w.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, w)

	if w.traffic.Prefix == "" {
		w.traffic.Prefix = "M"
	}

	for i := 0; i < b.hosts; i++ {
		w.addNode(b, name, i)
	}

	return w
}

func (w *World) addNode(b Builder, worldName string, i int) {
	mule := i >= b.hosts-b.mules
	bufferSize := b.bufferSize
	prefix := "Host"
	id := message.HostID(fmt.Sprintf("h%d", i))

	if mule {
		bufferSize = b.muleBufferSize
		prefix = "Mule"
		id = message.HostID(fmt.Sprintf("m%d", i))
	}

	rng := rand.New(rand.NewSource(w.rng.Int63()))
	walker := mobility.NewWalker(w.area.RandomCoord(rng), b.plannerFactory(rng))
	name := fmt.Sprintf("%s.%s[%d]", worldName, prefix, i)

	routerBuilder := b.routerBuilder
	if b.orderingFactory != nil {
		routerBuilder = routerBuilder.WithOrdering(b.orderingFactory(rng))
	}

	r := routerBuilder.
		WithTimeTeller(w).
		WithMobile(walker).
		WithBufferSize(bufferSize).
		WithFilter(b.filterFactory()).
		Build(name, id)

	n := &Node{router: r, walker: walker, mule: mule}
	w.nodes = append(w.nodes, n)
	w.byName[name] = n
}

func (b Builder) mustBeValid() {
	switch {
	case b.engine == nil:
		log.Panic("engine is not set")
	case b.filterFactory == nil:
		log.Panic("filter factory is not set")
	case b.hosts < 1 || b.mules < 0 || b.mules > b.hosts:
		log.Panicf("invalid host count %d with %d mules", b.hosts, b.mules)
	case b.transmitSpeed <= 0:
		log.Panicf("transmit speed must be positive, got %g", b.transmitSpeed)
	case b.traffic.enabled() && b.traffic.MinInterval <= 0:
		log.Panicf("message interval must be positive, got %g",
			b.traffic.MinInterval)
	case b.traffic.enabled() && b.traffic.MinSize > b.traffic.MaxSize:
		log.Panicf("message size range [%d, %d] is empty",
			b.traffic.MinSize, b.traffic.MaxSize)
	}
}
