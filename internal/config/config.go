// Package config provides YAML-based game configuration loading and
// difficulty presets for the Tetris engine.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for a Tetris game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SpeedConfig defines the fall interval and its progression.
type SpeedConfig struct {
	InitialMs int `yaml:"initial_ms"` // Interval at game start
	StepMs    int `yaml:"step_ms"`    // Reduction per cleared line (0 = fixed speed)
	MinMs     int `yaml:"min_ms"`     // Floor for the interval
}

// ScoringConfig defines how cleared lines translate into score.
type ScoringConfig struct {
	PointsPerLine int `yaml:"points_per_line"`
}

// Minimum board size that still fits every piece in every rotation.
const (
	MinRows = 4
	MinCols = 4
)

// Validate reports every invalid field at once.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Board.Rows < MinRows {
		errs = append(errs, fmt.Errorf("board.rows must be at least %d, got %d", MinRows, c.Board.Rows))
	}
	if c.Board.Cols < MinCols {
		errs = append(errs, fmt.Errorf("board.cols must be at least %d, got %d", MinCols, c.Board.Cols))
	}
	if c.Speed.InitialMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.initial_ms must be positive, got %d", c.Speed.InitialMs))
	}
	if c.Speed.StepMs < 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms must not be negative, got %d", c.Speed.StepMs))
	}
	if c.Speed.MinMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMs))
	}
	if c.Speed.MinMs > c.Speed.InitialMs {
		errs = append(errs, fmt.Errorf("speed.min_ms (%d) exceeds speed.initial_ms (%d)", c.Speed.MinMs, c.Speed.InitialMs))
	}
	if c.Scoring.PointsPerLine <= 0 {
		errs = append(errs, fmt.Errorf("scoring.points_per_line must be positive, got %d", c.Scoring.PointsPerLine))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// An empty string means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialIntervalForPreset returns the starting fall interval for a preset,
// or 0 when the preset does not change it.
func InitialIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1000
	case DifficultyNormal:
		return 800
	case DifficultyHard:
		return 500
	default:
		return 0
	}
}
