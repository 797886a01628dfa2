package config

import "time"

// SpeedCurve computes the fall interval as lines are cleared.
// Each cleared line shortens the interval by a fixed step until the floor.
type SpeedCurve struct {
	initial time.Duration
	step    time.Duration
	min     time.Duration
}

// NewSpeedCurve creates a speed curve from config values in milliseconds.
func NewSpeedCurve(cfg SpeedConfig) SpeedCurve {
	return SpeedCurve{
		initial: time.Duration(cfg.InitialMs) * time.Millisecond,
		step:    time.Duration(cfg.StepMs) * time.Millisecond,
		min:     time.Duration(cfg.MinMs) * time.Millisecond,
	}
}

// Initial returns the interval a new game starts with.
func (c SpeedCurve) Initial() time.Duration {
	return c.initial
}

// At returns the interval after the given number of cleared lines.
// A curve with no step never speeds up.
func (c SpeedCurve) At(lines int) time.Duration {
	if c.step <= 0 || lines <= 0 {
		return c.initial
	}
	interval := c.initial - time.Duration(lines)*c.step
	if interval < c.min {
		return c.min
	}
	return interval
}
