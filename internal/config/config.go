// Package config provides YAML-based game configuration loading and
// speed presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// SnakeConfig contains all configuration for the snake game.
// Values are fixed for the lifetime of a game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Timing  TimingConfig  `yaml:"timing"`
	Actor   ActorConfig   `yaml:"actor"`
	Scoring ScoringConfig `yaml:"scoring"`
	Target  TargetConfig  `yaml:"target"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size int `yaml:"size"`
}

// TimingConfig defines the tick cadence.
type TimingConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms"`
}

// ActorConfig defines the initial snake. The body trails left of the head.
type ActorConfig struct {
	InitialLength int `yaml:"initial_length"`
	StartX        int `yaml:"start_x"`
	StartY        int `yaml:"start_y"`
}

// ScoringConfig defines points per target.
type ScoringConfig struct {
	Reward int `yaml:"reward"`
}

// TargetConfig defines target placement.
type TargetConfig struct {
	Policy string `yaml:"policy"` // "anywhere" or "free"
}

// MinGridSize is the smallest board the game accepts.
const MinGridSize = 5

// TickInterval returns the tick cadence as a duration.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMs) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Size < MinGridSize {
		errs = append(errs, fmt.Errorf("grid.size must be at least %d, got %d", MinGridSize, c.Grid.Size))
	}
	if c.Timing.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_interval_ms must be positive, got %d", c.Timing.TickIntervalMs))
	}
	if c.Scoring.Reward <= 0 {
		errs = append(errs, fmt.Errorf("scoring.reward must be positive, got %d", c.Scoring.Reward))
	}
	if c.Actor.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("actor.initial_length must be at least 1, got %d", c.Actor.InitialLength))
	}

	// The initial body trails left of the head, so every segment must fit.
	tailX := c.Actor.StartX - c.Actor.InitialLength + 1
	if c.Actor.StartX >= c.Grid.Size || tailX < 0 || c.Actor.StartY < 0 || c.Actor.StartY >= c.Grid.Size {
		errs = append(errs, fmt.Errorf("actor (head %d,%d length %d) does not fit a %dx%d grid",
			c.Actor.StartX, c.Actor.StartY, c.Actor.InitialLength, c.Grid.Size, c.Grid.Size))
	}

	switch snake.TargetPolicy(c.Target.Policy) {
	case snake.TargetAnywhere, snake.TargetFree:
	default:
		errs = append(errs, fmt.Errorf("target.policy must be %q or %q, got %q",
			snake.TargetAnywhere, snake.TargetFree, c.Target.Policy))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid snake config: %w", err)
	}
	return nil
}

// Engine converts the configuration into engine parameters.
func (c SnakeConfig) Engine(seed int64) snake.Config {
	return snake.Config{
		GridSize:      c.Grid.Size,
		InitialLength: c.Actor.InitialLength,
		StartHead:     snake.Position{X: c.Actor.StartX, Y: c.Actor.StartY},
		Reward:        c.Scoring.Reward,
		Policy:        snake.TargetPolicy(c.Target.Policy),
		Seed:          seed,
	}
}
