// Package config defines the parameters of a simulation and loads them from
// .env files and the environment.
package config

import (
	"fmt"

	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/mobility"
	"github.com/sarchlab/oppnet/sim"
)

// Routing policies.
const (
	PolicyDirection      = "direction"
	PolicyContactHistory = "contacthistory"
)

// Movement models.
const (
	MovementGaussMarkov = "gaussmarkov"
	MovementLevyWalk    = "levywalk"
	MovementStationary  = "stationary"
)

// Error reports an invalid setting.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Routing configures the forwarding engine of every host.
type Routing struct {
	Policy               string
	InitialCopies        int
	BinaryMode           bool
	DirectionCoefficient int
	LowBufferFactor      int
	HighBufferFactor     int
	MuleBufferThreshold  int
	DropPolicy           string
	QueueMode            string
}

// World configures the hosts and their radios.
type World struct {
	Width, Height float64
	Hosts         int
	Mules         int

	// BufferSize and MuleBufferSize are in bytes.
	BufferSize     int
	MuleBufferSize int

	// TransmitRange is in meters and TransmitSpeed in bytes per second.
	TransmitRange float64
	TransmitSpeed float64

	// UpdateFreq is how often hosts move, contacts are detected, and routers
	// tick.
	UpdateFreq sim.Freq
}

// Movement configures how hosts move.
type Movement struct {
	Model       string
	GaussMarkov mobility.GaussMarkovParams
	LevyWalk    mobility.LevyWalkParams
}

// Messages configures message generation.
type Messages struct {
	// MinInterval and MaxInterval bound the time between two messages.
	MinInterval, MaxInterval sim.VTimeInSec
	MinSize, MaxSize         int
	TTL                      sim.VTimeInSec
}

// Output configures what the simulation produces besides the engine state.
type Output struct {
	// Recorder is the trace backend, "sqlite" or "clickhouse". Empty means
	// sqlite.
	Recorder string

	// DBName is the SQLite file name without extension. Empty picks a unique
	// name.
	DBName string

	// ClickHouseDSN locates the ClickHouse server when Recorder is
	// "clickhouse".
	ClickHouseDSN string

	// Monitor starts the HTTP monitor when true.
	Monitor     bool
	MonitorPort int
}

// Config holds all the parameters of a simulation.
type Config struct {
	Seed     int64
	Duration sim.VTimeInSec

	World    World
	Movement Movement
	Messages Messages
	Routing  Routing
	Output   Output
}

// Default returns a valid configuration.
func Default() Config {
	return Config{
		Seed:     1,
		Duration: 43200,
		World: World{
			Width:          2000,
			Height:         2000,
			Hosts:          40,
			Mules:          2,
			BufferSize:     5 * 1024 * 1024,
			MuleBufferSize: 1_000_000_000,
			TransmitRange:  50,
			TransmitSpeed:  250 * 1024,
			UpdateFreq:     1 * sim.Hz,
		},
		Movement: Movement{
			Model:       MovementGaussMarkov,
			GaussMarkov: mobility.DefaultGaussMarkovParams(),
			LevyWalk:    mobility.DefaultLevyWalkParams(),
		},
		Messages: Messages{
			MinInterval: 25,
			MaxInterval: 35,
			MinSize:     500 * 1024,
			MaxSize:     1024 * 1024,
			TTL:         0,
		},
		Routing: Routing{
			Policy:               PolicyDirection,
			InitialCopies:        6,
			BinaryMode:           true,
			DirectionCoefficient: 4,
			LowBufferFactor:      4,
			HighBufferFactor:     2,
			MuleBufferThreshold:  1_000_000_000,
			DropPolicy:           "oldest",
			QueueMode:            "fifo",
		},
		Output: Output{
			Recorder:    datarecording.BackendSQLite,
			MonitorPort: 0,
		},
	}
}
