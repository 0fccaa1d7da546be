package config

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/oppnet/sim"
)

// EnvPrefix starts the name of every setting.
const EnvPrefix = "OPPNET_"

type setter func(c *Config, v string) error

func intSetter(field func(c *Config) *int) setter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}

		*field(c) = n

		return nil
	}
}

func floatSetter(field func(c *Config) *float64) setter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}

		*field(c) = f

		return nil
	}
}

func timeSetter(field func(c *Config) *sim.VTimeInSec) setter {
	return floatSetter(func(c *Config) *float64 {
		return (*float64)(field(c))
	})
}

func seedSetter(field func(c *Config) *int64) setter {
	return func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}

		*field(c) = n

		return nil
	}
}

func boolSetter(field func(c *Config) *bool) setter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}

		*field(c) = b

		return nil
	}
}

func stringSetter(field func(c *Config) *string) setter {
	return func(c *Config, v string) error {
		*field(c) = strings.ToLower(strings.TrimSpace(v))
		return nil
	}
}

var settings = map[string]setter{
	"SEED":     seedSetter(func(c *Config) *int64 { return &c.Seed }),
	"DURATION": timeSetter(func(c *Config) *sim.VTimeInSec { return &c.Duration }),

	"WORLD_WIDTH":  floatSetter(func(c *Config) *float64 { return &c.World.Width }),
	"WORLD_HEIGHT": floatSetter(func(c *Config) *float64 { return &c.World.Height }),
	"HOSTS":        intSetter(func(c *Config) *int { return &c.World.Hosts }),
	"MULES":        intSetter(func(c *Config) *int { return &c.World.Mules }),
	"BUFFER_SIZE":  intSetter(func(c *Config) *int { return &c.World.BufferSize }),
	"MULE_BUFFER_SIZE": intSetter(func(c *Config) *int {
		return &c.World.MuleBufferSize
	}),
	"TRANSMIT_RANGE": floatSetter(func(c *Config) *float64 {
		return &c.World.TransmitRange
	}),
	"TRANSMIT_SPEED": floatSetter(func(c *Config) *float64 {
		return &c.World.TransmitSpeed
	}),
	"UPDATE_FREQ": floatSetter(func(c *Config) *float64 {
		return (*float64)(&c.World.UpdateFreq)
	}),

	"MOVEMENT_MODEL": stringSetter(func(c *Config) *string {
		return &c.Movement.Model
	}),
	"GM_ALPHA": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.Alpha
	}),
	"GM_MEAN_SPEED": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.MeanSpeed
	}),
	"GM_SPEED_VARIANCE": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.SpeedVariance
	}),
	"GM_PHASE_VARIANCE": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.PhaseVariance
	}),
	"GM_INTERVAL": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.Interval
	}),
	"GM_EDGE_DISTANCE": floatSetter(func(c *Config) *float64 {
		return &c.Movement.GaussMarkov.EdgeDistance
	}),
	"GM_SPEED_SEED": seedSetter(func(c *Config) *int64 {
		return &c.Movement.GaussMarkov.SpeedSeed
	}),
	"GM_PHASE_SEED": seedSetter(func(c *Config) *int64 {
		return &c.Movement.GaussMarkov.PhaseSeed
	}),
	"LEVY_ALPHA": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.Alpha
	}),
	"LEVY_SCALE": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.Scale
	}),
	"LEVY_MIN_SPEED": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.MinSpeed
	}),
	"LEVY_MAX_SPEED": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.MaxSpeed
	}),
	"LEVY_MIN_STEP": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.MinStep
	}),
	"LEVY_MAX_STEP": floatSetter(func(c *Config) *float64 {
		return &c.Movement.LevyWalk.MaxStep
	}),

	"MSG_MIN_INTERVAL": timeSetter(func(c *Config) *sim.VTimeInSec {
		return &c.Messages.MinInterval
	}),
	"MSG_MAX_INTERVAL": timeSetter(func(c *Config) *sim.VTimeInSec {
		return &c.Messages.MaxInterval
	}),
	"MSG_MIN_SIZE": intSetter(func(c *Config) *int { return &c.Messages.MinSize }),
	"MSG_MAX_SIZE": intSetter(func(c *Config) *int { return &c.Messages.MaxSize }),
	"MSG_TTL": timeSetter(func(c *Config) *sim.VTimeInSec {
		return &c.Messages.TTL
	}),

	"POLICY": stringSetter(func(c *Config) *string { return &c.Routing.Policy }),
	"INITIAL_COPIES": intSetter(func(c *Config) *int {
		return &c.Routing.InitialCopies
	}),
	"BINARY_MODE": boolSetter(func(c *Config) *bool { return &c.Routing.BinaryMode }),
	"DIRECTION_COEFFICIENT": intSetter(func(c *Config) *int {
		return &c.Routing.DirectionCoefficient
	}),
	"LOW_BUFFER_FACTOR": intSetter(func(c *Config) *int {
		return &c.Routing.LowBufferFactor
	}),
	"HIGH_BUFFER_FACTOR": intSetter(func(c *Config) *int {
		return &c.Routing.HighBufferFactor
	}),
	"MULE_BUFFER_THRESHOLD": intSetter(func(c *Config) *int {
		return &c.Routing.MuleBufferThreshold
	}),
	"DROP_POLICY": stringSetter(func(c *Config) *string {
		return &c.Routing.DropPolicy
	}),
	"QUEUE_MODE": stringSetter(func(c *Config) *string {
		return &c.Routing.QueueMode
	}),

	"RECORDER": stringSetter(func(c *Config) *string { return &c.Output.Recorder }),
	"CLICKHOUSE_DSN": func(c *Config, v string) error {
		c.Output.ClickHouseDSN = strings.TrimSpace(v)
		return nil
	},
	"DB_NAME": func(c *Config, v string) error {
		c.Output.DBName = strings.TrimSpace(v)
		return nil
	},
	"MONITOR":      boolSetter(func(c *Config) *bool { return &c.Output.Monitor }),
	"MONITOR_PORT": intSetter(func(c *Config) *int { return &c.Output.MonitorPort }),
}

// Keys returns the names of all the settings, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, EnvPrefix+k)
	}

	sort.Strings(keys)

	return keys
}

// Apply overrides the configuration with the given settings. Keys must carry
// EnvPrefix. Keys without the prefix are ignored.
func (c *Config) Apply(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		name, ok := strings.CutPrefix(k, EnvPrefix)
		if !ok {
			continue
		}

		set, ok := settings[name]
		if !ok {
			return &Error{Field: k, Reason: "unknown setting"}
		}

		if err := set(c, values[k]); err != nil {
			return &Error{Field: k, Reason: err.Error()}
		}
	}

	return nil
}

// Load starts from Default, applies the settings in the .env files, then the
// OPPNET_ variables of the process environment, and validates the result.
// Without files, ./.env is read if it exists.
func Load(files ...string) (Config, error) {
	c := Default()

	fileValues, err := readEnvFiles(files)
	if err != nil {
		return c, err
	}

	if err := c.Apply(fileValues); err != nil {
		return c, err
	}

	if err := c.Apply(environment()); err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		values, err := godotenv.Read()
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return values, err
	}

	return godotenv.Read(files...)
}

func environment() map[string]string {
	values := make(map[string]string)

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			values[k] = v
		}
	}

	return values
}
