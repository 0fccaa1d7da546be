// Package simulation assembles a world, its tracers, and the optional
// monitor from a configuration and runs it.
package simulation

import (
	"github.com/sarchlab/oppnet/config"
	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/monitoring"
	"github.com/sarchlab/oppnet/sim"
	"github.com/sarchlab/oppnet/tracing"
	"github.com/sarchlab/oppnet/world"
)

// A Simulation owns everything a run needs.
type Simulation struct {
	id     string
	cfg    config.Config
	engine *sim.SerialEngine
	world  *world.World

	stats        *tracing.StatsTracer
	dataRecorder datarecording.DataRecorder
	dbTracer     *tracing.DBTracer

	monitor    *monitoring.Monitor
	monitorURL string
	progress   *monitoring.ProgressBar
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Config returns the parameters of the run.
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetWorld returns the world being simulated.
func (s *Simulation) GetWorld() *world.World {
	return s.world
}

// GetDataRecorder returns the data recorder used in the simulation, or nil
// if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation, or nil.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server, or an empty
// string if monitoring is off.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// Stats returns the delivery statistics collected so far.
func (s *Simulation) Stats() tracing.Stats {
	return s.stats.Stats()
}

// collect lets the tracer see the events of the world, every router, and
// every store.
func (s *Simulation) collect(t tracing.Tracer) {
	tracing.CollectTrace(s.world, t)

	for _, n := range s.world.Nodes() {
		tracing.CollectTrace(n.Router(), t)
		tracing.CollectTrace(n.Router().Store(), t)
	}
}

// Run starts the world and runs the engine until no event is left.
func (s *Simulation) Run() error {
	s.world.Start()

	if err := s.engine.Run(); err != nil {
		return err
	}

	s.engine.Finished()

	return nil
}

// Terminate flushes the traces and closes the data recorder.
func (s *Simulation) Terminate() {
	if s.dbTracer != nil {
		s.dbTracer.Terminate()
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}

	if s.monitor != nil && s.progress != nil {
		s.monitor.CompleteProgressBar(s.progress)
		s.progress = nil
	}
}
