package simulation

import (
	"log"
	"math/rand"

	"github.com/rs/xid"
	"github.com/sarchlab/oppnet/config"
	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/mobility"
	"github.com/sarchlab/oppnet/monitoring"
	"github.com/sarchlab/oppnet/replication"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/routing/contacthistory"
	"github.com/sarchlab/oppnet/routing/direction"
	"github.com/sarchlab/oppnet/sim"
	"github.com/sarchlab/oppnet/tracing"
	"github.com/sarchlab/oppnet/world"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg         config.Config
	monitorOn   bool
	monitorPort int
	recordingOn bool
	traceLogger *log.Logger
	eventLogger *log.Logger
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:         config.Default(),
		recordingOn: true,
	}
}

// WithConfig sets the parameters of the simulation. The monitor settings of
// the configuration apply unless overridden later.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.cfg = cfg
	b.monitorOn = cfg.Output.Monitor
	b.monitorPort = cfg.Output.MonitorPort

	return b
}

// WithMonitoring starts the monitoring server with the simulation.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	b.monitorPort = 0

	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.cfg.Output.DBName = filename
	return b
}

// WithoutRecording disables the trace database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithTraceLogger prints every message event into the logger.
func (b Builder) WithTraceLogger(logger *log.Logger) Builder {
	b.traceLogger = logger
	return b
}

// WithEventLogger prints every engine event into the logger.
func (b Builder) WithEventLogger(logger *log.Logger) Builder {
	b.eventLogger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if err := b.cfg.Validate(); err != nil {
		log.Panic(err)
	}

	if !b.monitorOn && b.monitorPort != 0 {
		log.Panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:     xid.New().String(),
		cfg:    b.cfg,
		engine: sim.NewSerialEngine(),
	}

	s.world = b.buildWorld(s.engine)
	s.stats = tracing.NewStatsTracer(s.engine)
	s.collect(s.stats)

	if b.recordingOn {
		b.buildRecorder(s)
	}

	if b.traceLogger != nil {
		s.collect(tracing.NewLogTracer(s.engine, b.traceLogger))
	}

	if b.eventLogger != nil {
		s.engine.AcceptHook(sim.NewEventLogger(b.eventLogger))
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	return s
}

func (b Builder) buildRecorder(s *Simulation) {
	outputPath := b.cfg.Output.DBName
	if outputPath == "" {
		outputPath = "oppnet_sim_" + s.id
	}

	s.dataRecorder = datarecording.NewWithConfig(datarecording.RecorderConfig{
		Type:    b.cfg.Output.Recorder,
		Path:    outputPath,
		ConnStr: b.cfg.Output.ClickHouseDSN,
	})
	s.dbTracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
	s.collect(s.dbTracer)
}

func (b Builder) buildMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterWorld(s.world)
	s.monitor.RegisterStats(s.stats)

	s.progress = s.monitor.CreateProgressBar("Simulation", uint64(b.cfg.Duration))
	s.engine.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos == sim.HookPosAfterEvent {
			s.progress.AdvanceTo(uint64(s.engine.CurrentTime()))
		}
	}))

	s.monitorURL = s.monitor.StartServer()
}

func (b Builder) buildWorld(engine sim.Engine) *world.World {
	cfg := b.cfg

	dropPolicy, err := cfg.Routing.ParseDropPolicy()
	if err != nil {
		log.Panic(err)
	}

	mode := replication.SingleCopy
	if cfg.Routing.BinaryMode {
		mode = replication.Binary
	}

	queueMode := message.QueueMode(cfg.Routing.QueueMode)

	routerBuilder := routing.MakeBuilder().
		WithController(replication.NewController(cfg.Routing.InitialCopies, mode)).
		WithDropPolicy(dropPolicy)

	return world.MakeBuilder().
		WithEngine(engine).
		WithFreq(cfg.World.UpdateFreq).
		WithArea(mobility.Area{Width: cfg.World.Width, Height: cfg.World.Height}).
		WithHosts(cfg.World.Hosts, cfg.World.Mules).
		WithBufferSizes(cfg.World.BufferSize, cfg.World.MuleBufferSize).
		WithTransmitRange(cfg.World.TransmitRange).
		WithTransmitSpeed(cfg.World.TransmitSpeed).
		WithEndTime(cfg.Duration).
		WithTraffic(world.Traffic{
			MinInterval: cfg.Messages.MinInterval,
			MaxInterval: cfg.Messages.MaxInterval,
			MinSize:     cfg.Messages.MinSize,
			MaxSize:     cfg.Messages.MaxSize,
			TTL:         cfg.Messages.TTL,
			Prefix:      "M",
		}).
		WithSeed(cfg.Seed).
		WithRouterBuilder(routerBuilder).
		WithFilterFactory(filterFactory(cfg.Routing)).
		WithPlannerFactory(plannerFactory(cfg)).
		WithOrderingFactory(orderingFactory(queueMode)).
		Build("World")
}

func orderingFactory(mode message.QueueMode) world.OrderingFactory {
	return func(rng *rand.Rand) message.Ordering {
		ordering, err := message.OrderingFor(mode, rng.Int63())
		if err != nil {
			log.Panic(err)
		}

		return ordering
	}
}

func filterFactory(cfg config.Routing) world.FilterFactory {
	switch cfg.Policy {
	case config.PolicyDirection:
		return func() routing.NeighborFilter {
			return direction.NewPolicy(cfg.DirectionCoefficient)
		}
	case config.PolicyContactHistory:
		historyCfg := contacthistory.Config{
			LowBufferFactor:     float64(cfg.LowBufferFactor),
			HighBufferFactor:    float64(cfg.HighBufferFactor),
			MuleBufferThreshold: cfg.MuleBufferThreshold,
		}

		return func() routing.NeighborFilter {
			return contacthistory.NewPolicy(historyCfg)
		}
	default:
		log.Panicf("unknown policy %q", cfg.Policy)
	}

	return nil
}

func plannerFactory(cfg config.Config) world.PlannerFactory {
	area := mobility.Area{Width: cfg.World.Width, Height: cfg.World.Height}

	switch cfg.Movement.Model {
	case config.MovementGaussMarkov:
		return func(rng *rand.Rand) mobility.Planner {
			params := cfg.Movement.GaussMarkov
			params.SpeedSeed += rng.Int63()
			params.PhaseSeed += rng.Int63()

			return mobility.NewGaussMarkov(params, area, rng)
		}
	case config.MovementLevyWalk:
		return func(rng *rand.Rand) mobility.Planner {
			return mobility.NewLevyWalk(cfg.Movement.LevyWalk, area, rng)
		}
	case config.MovementStationary:
		return func(*rand.Rand) mobility.Planner {
			return mobility.Stationary{}
		}
	default:
		log.Panicf("unknown movement model %q", cfg.Movement.Model)
	}

	return nil
}
