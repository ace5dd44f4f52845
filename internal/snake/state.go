package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Position is a cell on the board.
type Position = core.Point

// Status is the lifecycle state of a game.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusOver // terminal until Restart
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome describes what a single Step did.
type Outcome int

const (
	OutcomeIdle    Outcome = iota // not running, nothing happened
	OutcomeMoved                  // plain shift
	OutcomeAte                    // consumed the target and grew
	OutcomeHitWall                // head would leave the grid
	OutcomeHitSelf                // head would enter the body
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeHitWall:
		return "hit_wall"
	case OutcomeHitSelf:
		return "hit_self"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ended the game.
func (o Outcome) Terminal() bool {
	return o == OutcomeHitWall || o == OutcomeHitSelf
}

// State is a read-only copy of the game for the presentation layer.
// Actor is owned by the caller; mutating it does not affect the engine.
type State struct {
	Actor     []Position // Head at index 0
	Target    Position
	Direction Direction // Committed on the last tick
	Pending   Direction // Applied on the next tick
	Status    Status
	Score     int
	Tick      uint64  // Steps processed while running
	End       Outcome // Why the game ended; OutcomeIdle while not over
	GridSize  int
	Seed      int64
}

// Head returns the head position. The actor is never empty.
func (s State) Head() Position {
	return s.Actor[0]
}

// Len returns the actor length.
func (s State) Len() int {
	return len(s.Actor)
}

// Occupies reports whether any actor segment is at p.
func (s State) Occupies(p Position) bool {
	for _, seg := range s.Actor {
		if seg == p {
			return true
		}
	}
	return false
}

// String returns a compact debug representation.
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d status=%s score=%d len=%d dir=%s",
		s.Tick, s.Status, s.Score, len(s.Actor), s.Direction)
	if len(s.Actor) > 0 {
		fmt.Fprintf(&b, " head=(%d,%d)", s.Actor[0].X, s.Actor[0].Y)
	}
	fmt.Fprintf(&b, " target=(%d,%d)", s.Target.X, s.Target.Y)
	if s.Status == StatusOver {
		fmt.Fprintf(&b, " end=%s", s.End)
	}
	return b.String()
}
