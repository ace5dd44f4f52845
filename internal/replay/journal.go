// Package replay records the actions of a game and re-simulates recorded
// games. Because the engine is seeded and the only other inputs are actions
// stamped with the tick they arrived before, a replay reproduces the game exactly.
package replay

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// End reasons for runs that did not end in a collision.
const (
	EndRestart = "restart"
	EndQuit    = "quit"
	EndLimit   = "limit" // Tick cap reached
)

// Journal records one game at a time on top of an engine.
// Call Record before dispatching an action, Finish when the game ends, and
// Begin once a new game has started.
type Journal struct {
	mu      sync.Mutex
	engine  *snake.Engine
	pilot   string
	actions []storage.ActionRecord
	done    bool
}

// NewJournal creates a journal for the engine's current game.
// pilot names the autopilot driving the game, empty for a human.
func NewJournal(e *snake.Engine, pilot string) *Journal {
	return &Journal{engine: e, pilot: pilot}
}

// Record stamps an action with the current engine tick.
// Restart and quit end runs rather than belong to them, so they are skipped.
func (j *Journal) Record(a core.Action) {
	if a == core.ActionNone || a == core.ActionRestart || a == core.ActionQuit {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.done {
		return
	}
	j.actions = append(j.actions, storage.ActionRecord{
		Tick:   j.engine.Tick(),
		Action: a.String(),
	})
}

// Finish closes the current game and returns it as a run.
// It returns false if the game was already finished or nothing happened in it.
// reason defaults to the engine's end outcome when empty.
func (j *Journal) Finish(reason string) (storage.Run, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done {
		return storage.Run{}, false
	}
	s := j.engine.Snapshot()
	if s.Tick == 0 && len(j.actions) == 0 {
		return storage.Run{}, false
	}
	j.done = true

	if reason == "" {
		reason = s.End.String()
	}
	run := BuildRun(j.engine.Config(), s, reason, j.pilot)
	run.Actions = append([]storage.ActionRecord(nil), j.actions...)
	return run, true
}

// Begin starts recording a new game.
func (j *Journal) Begin() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.actions = nil
	j.done = false
}

// Len returns the number of actions recorded for the current game.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.actions)
}

// BuildRun assembles a run record from the engine settings and a final snapshot.
func BuildRun(cfg snake.Config, s snake.State, reason, pilot string) storage.Run {
	return storage.Run{
		Seed:          s.Seed,
		GridSize:      cfg.GridSize,
		InitialLength: cfg.InitialLength,
		StartX:        cfg.StartHead.X,
		StartY:        cfg.StartHead.Y,
		Reward:        cfg.Reward,
		Policy:        string(cfg.Policy),
		Pilot:         pilot,
		Score:         s.Score,
		Length:        s.Len(),
		Ticks:         s.Tick,
		EndReason:     reason,
	}
}

// EngineConfig rebuilds the engine settings a run was played with.
func EngineConfig(run storage.Run) snake.Config {
	return snake.Config{
		GridSize:      run.GridSize,
		InitialLength: run.InitialLength,
		StartHead:     snake.Position{X: run.StartX, Y: run.StartY},
		Reward:        run.Reward,
		Policy:        snake.TargetPolicy(run.Policy),
		Seed:          run.Seed,
	}
}
