// Package input translates player actions into engine calls.
// It holds no state of its own beyond the action mapping table.
package input

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Engine is the part of the game engine the controller drives.
type Engine interface {
	Status() snake.Status
	SetDirection(d snake.Direction) bool
	TogglePause() snake.Status
	Restart()
}

var directions = map[core.Action]snake.Direction{
	core.ActionUp:    snake.DirUp,
	core.ActionDown:  snake.DirDown,
	core.ActionLeft:  snake.DirLeft,
	core.ActionRight: snake.DirRight,
}

// DirectionFor returns the direction a movement action requests.
func DirectionFor(a core.Action) (snake.Direction, bool) {
	d, ok := directions[a]
	return d, ok
}

// ActionFor is the inverse of DirectionFor.
func ActionFor(d snake.Direction) core.Action {
	for a, dir := range directions {
		if dir == d {
			return a
		}
	}
	return core.ActionNone
}

// Controller routes actions to an engine.
type Controller struct {
	engine Engine
}

// NewController creates a controller for the given engine.
func NewController(e Engine) *Controller {
	return &Controller{engine: e}
}

// Handle applies one action and reports whether the engine accepted it.
// Rejected input is normal operation, never an error:
//   - pause toggles running/paused and is ignored once the game is over;
//   - directions are dropped unless the game is running, then the engine
//     applies its own reversal guard;
//   - restart is always permitted.
//
// Quit and unknown actions are not the engine's business and return false.
func (c *Controller) Handle(a core.Action) bool {
	switch a {
	case core.ActionPause:
		if c.engine.Status() == snake.StatusOver {
			return false
		}
		c.engine.TogglePause()
		return true

	case core.ActionRestart:
		c.engine.Restart()
		return true

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if c.engine.Status() != snake.StatusRunning {
			return false
		}
		return c.engine.SetDirection(directions[a])
	}

	return false
}
