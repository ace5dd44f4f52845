package config

import "fmt"

// SpeedPreset represents a named tick cadence chosen before a game starts.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// Presets lists the known presets, slowest first.
func Presets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast}
}

// IntervalForPreset returns the tick interval in milliseconds for a preset.
func IntervalForPreset(preset SpeedPreset) (int, bool) {
	switch preset {
	case SpeedSlow:
		return 200, true
	case SpeedNormal:
		return 150, true
	case SpeedFast:
		return 100, true
	default:
		return 0, false
	}
}

// ApplySpeedPreset overrides the tick interval. An empty preset keeps the
// configured value.
func ApplySpeedPreset(cfg *SnakeConfig, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	ms, ok := IntervalForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown speed preset %q (want slow, normal or fast)", preset)
	}
	cfg.Timing.TickIntervalMs = ms
	return nil
}
