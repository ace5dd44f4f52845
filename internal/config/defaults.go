package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size: 20,
		},
		Timing: TimingConfig{
			TickIntervalMs: 150,
		},
		Actor: ActorConfig{
			InitialLength: 3,
			StartX:        10,
			StartY:        10,
		},
		Scoring: ScoringConfig{
			Reward: 10,
		},
		Target: TargetConfig{
			Policy: "anywhere",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
