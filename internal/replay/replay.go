package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrDiverged is returned when a replay does not reproduce the recorded run.
var ErrDiverged = errors.New("replay: run diverged")

// Play re-simulates a recorded run. onStep, if non-nil, receives a snapshot
// after every tick. The final state is returned even when the replay diverges.
func Play(run storage.Run, onStep func(snake.State)) (snake.State, error) {
	e := snake.New(EngineConfig(run))
	c := input.NewController(e)

	for i, rec := range run.Actions {
		action, ok := core.ParseAction(rec.Action)
		if !ok {
			return e.Snapshot(), fmt.Errorf("replay: action %d: unknown action %q", i, rec.Action)
		}
		if err := advance(e, rec.Tick, onStep); err != nil {
			return e.Snapshot(), err
		}
		c.Handle(action)
	}

	if err := advance(e, run.Ticks, onStep); err != nil {
		return e.Snapshot(), err
	}

	final := e.Snapshot()
	return final, verify(run, final)
}

// advance steps until the engine reaches the target tick.
func advance(e *snake.Engine, target uint64, onStep func(snake.State)) error {
	for e.Tick() < target {
		if e.Step() == snake.OutcomeIdle {
			return fmt.Errorf("%w: stalled at tick %d (%s) before tick %d",
				ErrDiverged, e.Tick(), e.Status(), target)
		}
		if onStep != nil {
			onStep(e.Snapshot())
		}
	}
	return nil
}

func verify(run storage.Run, s snake.State) error {
	switch {
	case s.Score != run.Score:
		return fmt.Errorf("%w: score %d, recorded %d", ErrDiverged, s.Score, run.Score)
	case s.Len() != run.Length:
		return fmt.Errorf("%w: length %d, recorded %d", ErrDiverged, s.Len(), run.Length)
	case s.Tick != run.Ticks:
		return fmt.Errorf("%w: ticks %d, recorded %d", ErrDiverged, s.Tick, run.Ticks)
	}

	collided := run.EndReason == snake.OutcomeHitWall.String() || run.EndReason == snake.OutcomeHitSelf.String()
	if collided && s.End.String() != run.EndReason {
		return fmt.Errorf("%w: ended %s, recorded %s", ErrDiverged, s.End, run.EndReason)
	}
	return nil
}
