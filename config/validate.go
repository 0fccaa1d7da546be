package config

import (
	"fmt"

	"github.com/sarchlab/oppnet/datarecording"
	"github.com/sarchlab/oppnet/message"
)

// Validate returns a *Error describing the first invalid setting, or nil.
func (c Config) Validate() error {
	checks := []func() *Error{
		c.validateRun,
		c.World.validate,
		c.Movement.validate,
		c.Messages.validate,
		c.Routing.validate,
		c.Output.validate,
		c.validateMules,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	return nil
}

func invalid(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// validateMules checks that the configured mules are recognized as mules.
func (c Config) validateMules() *Error {
	if c.World.Mules > 0 && c.World.MuleBufferSize < c.Routing.MuleBufferThreshold {
		return invalid("World.MuleBufferSize",
			"%d is below the mule buffer threshold %d",
			c.World.MuleBufferSize, c.Routing.MuleBufferThreshold)
	}

	return nil
}

func (c Config) validateRun() *Error {
	if c.Duration <= 0 {
		return invalid("Duration", "must be positive, got %g", c.Duration)
	}

	return nil
}

func (w World) validate() *Error {
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return invalid("World.Width/Height",
			"must be positive, got %gx%g", w.Width, w.Height)
	case w.Hosts < 2:
		return invalid("World.Hosts", "needs at least 2 hosts, got %d", w.Hosts)
	case w.Mules < 0 || w.Mules > w.Hosts:
		return invalid("World.Mules",
			"must be in [0, %d], got %d", w.Hosts, w.Mules)
	case w.BufferSize <= 0:
		return invalid("World.BufferSize",
			"must be positive, got %d", w.BufferSize)
	case w.Mules > 0 && w.MuleBufferSize <= 0:
		return invalid("World.MuleBufferSize",
			"must be positive, got %d", w.MuleBufferSize)
	case w.TransmitRange <= 0:
		return invalid("World.TransmitRange",
			"must be positive, got %g", w.TransmitRange)
	case w.TransmitSpeed <= 0:
		return invalid("World.TransmitSpeed",
			"must be positive, got %g", w.TransmitSpeed)
	case w.UpdateFreq <= 0:
		return invalid("World.UpdateFreq",
			"must be positive, got %g", w.UpdateFreq)
	}

	return nil
}

func (m Movement) validate() *Error {
	switch m.Model {
	case MovementGaussMarkov:
		p := m.GaussMarkov
		if p.Alpha < 0 || p.Alpha > 1 {
			return invalid("Movement.GaussMarkov.Alpha",
				"must be in [0, 1], got %g", p.Alpha)
		}

		if p.Interval <= 0 {
			return invalid("Movement.GaussMarkov.Interval",
				"must be positive, got %g", p.Interval)
		}

		if p.SpeedVariance < 0 || p.PhaseVariance < 0 {
			return invalid("Movement.GaussMarkov",
				"variances must not be negative")
		}
	case MovementLevyWalk:
		p := m.LevyWalk
		if p.Alpha <= 0 || p.Alpha > 2 {
			return invalid("Movement.LevyWalk.Alpha",
				"must be in (0, 2], got %g", p.Alpha)
		}

		if p.MinSpeed <= 0 || p.MaxSpeed < p.MinSpeed {
			return invalid("Movement.LevyWalk.Speed",
				"must satisfy 0 < min <= max, got %g, %g",
				p.MinSpeed, p.MaxSpeed)
		}

		if p.MinStep <= 0 || p.MaxStep < p.MinStep {
			return invalid("Movement.LevyWalk.Step",
				"must satisfy 0 < min <= max, got %g, %g",
				p.MinStep, p.MaxStep)
		}
	case MovementStationary:
	default:
		return invalid("Movement.Model", "unknown model %q", m.Model)
	}

	return nil
}

func (m Messages) validate() *Error {
	switch {
	case m.MinInterval <= 0 || m.MaxInterval < m.MinInterval:
		return invalid("Messages.Interval",
			"must satisfy 0 < min <= max, got %g, %g",
			m.MinInterval, m.MaxInterval)
	case m.MinSize <= 0 || m.MaxSize < m.MinSize:
		return invalid("Messages.Size",
			"must satisfy 0 < min <= max, got %d, %d", m.MinSize, m.MaxSize)
	case m.TTL < 0:
		return invalid("Messages.TTL", "must not be negative, got %g", m.TTL)
	}

	return nil
}

func (r Routing) validate() *Error {
	switch r.Policy {
	case PolicyDirection, PolicyContactHistory:
	default:
		return invalid("Routing.Policy", "unknown policy %q", r.Policy)
	}

	switch {
	case r.InitialCopies < 1:
		return invalid("Routing.InitialCopies",
			"must be at least 1, got %d", r.InitialCopies)
	case r.DirectionCoefficient < 1 ||
		r.DirectionCoefficient > message.MaxSectors:
		return invalid("Routing.DirectionCoefficient",
			"must be in [1, %d], got %d",
			message.MaxSectors, r.DirectionCoefficient)
	case r.LowBufferFactor <= 0 || r.HighBufferFactor <= 0:
		return invalid("Routing.BufferFactor",
			"must be positive, got low %d high %d",
			r.LowBufferFactor, r.HighBufferFactor)
	case r.LowBufferFactor <= r.HighBufferFactor:
		return invalid("Routing.BufferFactor",
			"low factor %d must exceed high factor %d",
			r.LowBufferFactor, r.HighBufferFactor)
	case r.MuleBufferThreshold <= 0:
		return invalid("Routing.MuleBufferThreshold",
			"must be positive, got %d", r.MuleBufferThreshold)
	}

	if _, err := r.ParseDropPolicy(); err != nil {
		return invalid("Routing.DropPolicy", "%v", err)
	}

	if _, err := message.OrderingFor(message.QueueMode(r.QueueMode), 0); err != nil {
		return invalid("Routing.QueueMode", "%v", err)
	}

	return nil
}

// ParseDropPolicy converts the DropPolicy setting.
func (r Routing) ParseDropPolicy() (message.DropPolicy, error) {
	switch r.DropPolicy {
	case "oldest", "":
		return message.DropOldest, nil
	case "largest":
		return message.DropLargest, nil
	default:
		return 0, fmt.Errorf("unknown drop policy %q", r.DropPolicy)
	}
}

func (o Output) validate() *Error {
	switch o.Recorder {
	case datarecording.BackendSQLite, "":
	case datarecording.BackendClickHouse:
		if o.ClickHouseDSN == "" {
			return invalid("Output.ClickHouseDSN",
				"must be set for the %s recorder", o.Recorder)
		}
	default:
		return invalid("Output.Recorder", "unknown recorder %q", o.Recorder)
	}

	if o.MonitorPort < 0 || o.MonitorPort > 65535 {
		return invalid("Output.MonitorPort",
			"must be in [0, 65535], got %d", o.MonitorPort)
	}

	return nil
}
