package input

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// fakeEngine records calls so tests can check what was forwarded.
type fakeEngine struct {
	status   snake.Status
	dirs     []snake.Direction
	toggles  int
	restarts int
}

func (f *fakeEngine) Status() snake.Status { return f.status }

func (f *fakeEngine) SetDirection(d snake.Direction) bool {
	f.dirs = append(f.dirs, d)
	return true
}

func (f *fakeEngine) TogglePause() snake.Status {
	f.toggles++
	return f.status
}

func (f *fakeEngine) Restart() { f.restarts++ }

func TestDirectionsForwardedOnlyWhileRunning(t *testing.T) {
	tests := []struct {
		status    snake.Status
		forwarded bool
	}{
		{snake.StatusRunning, true},
		{snake.StatusPaused, false},
		{snake.StatusOver, false},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			f := &fakeEngine{status: tc.status}
			c := NewController(f)

			got := c.Handle(core.ActionUp)
			if got != tc.forwarded {
				t.Errorf("Handle(up) = %v, expected %v", got, tc.forwarded)
			}
			if tc.forwarded && (len(f.dirs) != 1 || f.dirs[0] != snake.DirUp) {
				t.Errorf("forwarded directions = %v, expected [up]", f.dirs)
			}
			if !tc.forwarded && len(f.dirs) != 0 {
				t.Errorf("directions should not reach the engine, got %v", f.dirs)
			}
		})
	}
}

func TestPauseIgnoredWhenOver(t *testing.T) {
	f := &fakeEngine{status: snake.StatusPaused}
	c := NewController(f)

	if !c.Handle(core.ActionPause) || f.toggles != 1 {
		t.Errorf("pause while paused should toggle, toggles = %d", f.toggles)
	}

	f.status = snake.StatusOver
	if c.Handle(core.ActionPause) || f.toggles != 1 {
		t.Errorf("pause while over should be ignored, toggles = %d", f.toggles)
	}
}

func TestRestartAlwaysPermitted(t *testing.T) {
	for _, status := range []snake.Status{snake.StatusRunning, snake.StatusPaused, snake.StatusOver} {
		f := &fakeEngine{status: status}
		if !NewController(f).Handle(core.ActionRestart) || f.restarts != 1 {
			t.Errorf("restart in %v should reach the engine", status)
		}
	}
}

func TestQuitAndNoneIgnored(t *testing.T) {
	f := &fakeEngine{status: snake.StatusRunning}
	c := NewController(f)

	for _, a := range []core.Action{core.ActionNone, core.ActionQuit, core.Action(42)} {
		if c.Handle(a) {
			t.Errorf("Handle(%v) should return false", a)
		}
	}
	if f.toggles != 0 || f.restarts != 0 || len(f.dirs) != 0 {
		t.Error("ignored actions should not touch the engine")
	}
}

func TestControllerWithRealEngine(t *testing.T) {
	cfg := snake.DefaultConfig()
	cfg.Seed = 1
	e := snake.New(cfg)
	c := NewController(e)

	if c.Handle(core.ActionLeft) {
		t.Error("reversal should be rejected by the engine")
	}
	if !c.Handle(core.ActionDown) {
		t.Error("down should be accepted while moving right")
	}

	c.Handle(core.ActionPause)
	if e.Status() != snake.StatusPaused {
		t.Fatalf("status = %v, expected paused", e.Status())
	}
	if c.Handle(core.ActionUp) {
		t.Error("direction while paused should be ignored")
	}
	if s := e.Snapshot(); s.Pending != snake.DirDown {
		t.Errorf("pending = %v, expected the pre-pause down", s.Pending)
	}

	c.Handle(core.ActionPause)
	c.Handle(core.ActionRestart)
	if s := e.Snapshot(); s.Pending != snake.DirRight || s.Status != snake.StatusRunning {
		t.Errorf("restart left %s", s)
	}
}

func TestActionDirectionMapping(t *testing.T) {
	for _, d := range []snake.Direction{snake.DirUp, snake.DirDown, snake.DirLeft, snake.DirRight} {
		a := ActionFor(d)
		back, ok := DirectionFor(a)
		if !ok || back != d {
			t.Errorf("round trip of %v via %v gave %v", d, a, back)
		}
	}
	if _, ok := DirectionFor(core.ActionPause); ok {
		t.Error("pause is not a direction")
	}
	if ActionFor(snake.Direction(7)) != core.ActionNone {
		t.Error("unknown direction should map to none")
	}
}
