package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultSnakeConfig %+v", cfg, DefaultSnakeConfig())
	}
}

func TestDefaultsMatchEngineDefaults(t *testing.T) {
	got := DefaultSnakeConfig().Engine(0)
	want := snake.DefaultConfig()
	if got != want {
		t.Errorf("Engine() = %+v, expected %+v", got, want)
	}
	if DefaultSnakeConfig().TickInterval() != 150*time.Millisecond {
		t.Errorf("TickInterval() = %v, expected 150ms", DefaultSnakeConfig().TickInterval())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("scoring:\n  reward: 5\ntarget:\n  policy: free\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Scoring.Reward != 5 || cfg.Target.Policy != "free" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Grid.Size != 20 || cfg.Timing.TickIntervalMs != 150 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SnakeConfig)
		wantErr string
	}{
		{"defaults", func(*SnakeConfig) {}, ""},
		{"tiny grid", func(c *SnakeConfig) { c.Grid.Size = 3 }, "grid.size"},
		{"zero interval", func(c *SnakeConfig) { c.Timing.TickIntervalMs = 0 }, "tick_interval_ms"},
		{"negative reward", func(c *SnakeConfig) { c.Scoring.Reward = -1 }, "reward"},
		{"tail off grid", func(c *SnakeConfig) { c.Actor.StartX = 1 }, "does not fit"},
		{"head off grid", func(c *SnakeConfig) { c.Actor.StartY = 20 }, "does not fit"},
		{"unknown policy", func(c *SnakeConfig) { c.Target.Policy = "near" }, "target.policy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()

			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 30\nactor:\n  start_x: 15\n  start_y: 15\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg.Grid.Size != 30 || cfg.Actor.StartX != 15 {
		t.Errorf("custom config not applied: %+v", cfg)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	if _, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("malformed yaml should be an error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  size: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(invalid); err == nil {
		t.Error("invalid values should be an error")
	}
}

func TestLoadSnakeFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Target.Policy = "free"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "tick_interval_ms: 150") {
		t.Errorf("yaml missing expected key:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil || back != cfg {
		t.Errorf("Parse(Marshal(cfg)) = %+v, %v", back, err)
	}
}

func TestSpeedPresets(t *testing.T) {
	cfg := DefaultSnakeConfig()

	if err := ApplySpeedPreset(&cfg, SpeedFast); err != nil {
		t.Fatalf("ApplySpeedPreset(fast) failed: %v", err)
	}
	if cfg.TickInterval() != 100*time.Millisecond {
		t.Errorf("fast interval = %v, expected 100ms", cfg.TickInterval())
	}

	if err := ApplySpeedPreset(&cfg, ""); err != nil || cfg.Timing.TickIntervalMs != 100 {
		t.Error("empty preset should keep the configured interval")
	}

	if err := ApplySpeedPreset(&cfg, "warp"); err == nil {
		t.Error("unknown preset should be an error")
	}

	prev := 1000
	for _, p := range Presets() {
		ms, ok := IntervalForPreset(p)
		if !ok || ms >= prev {
			t.Errorf("preset %s: interval %d should be known and faster than %d", p, ms, prev)
		}
		prev = ms
	}
}

func TestAppPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := AppPath("runs.db"); got != filepath.Join(home, ".snake", "runs.db") {
		t.Errorf("AppPath = %q", got)
	}
}
