package pilot

import (
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

func init() {
	registry.Register("cautious", func() registry.Pilot { return NewCautious() })
}

// Cautious chases the target but never steps into a wall or its own body,
// and avoids pockets too small to hold itself.
type Cautious struct{}

// NewCautious creates a cautious pilot.
func NewCautious() *Cautious {
	return &Cautious{}
}

func (c *Cautious) ID() string { return "cautious" }

func (c *Cautious) Title() string { return "Cautious" }

func (c *Cautious) Reset(int64) {}

// option is one safe direction and how good it looks.
type option struct {
	dir      snake.Direction
	room     int // Free cells reachable from the new head, capped
	roomy    bool
	dist     int
	straight bool
}

// beats ranks options: room to fit the actor first, then the larger pocket,
// then distance to the target, then the current heading.
func (o option) beats(other option) bool {
	if o.roomy != other.roomy {
		return o.roomy
	}
	if !o.roomy && o.room != other.room {
		return o.room > other.room
	}
	if o.dist != other.dist {
		return o.dist < other.dist
	}
	return o.straight && !other.straight
}

// Next returns the best safe direction. With no safe direction it keeps
// going and accepts the collision.
func (c *Cautious) Next(s snake.State) (snake.Direction, bool) {
	need := s.Len() + 1

	var (
		best  option
		found bool
	)
	for _, d := range candidates(s) {
		if !safe(s, d) {
			continue
		}
		room := reachable(s, nextHead(s, d), need)
		o := option{
			dir:      d,
			room:     room,
			roomy:    room >= need,
			dist:     distance(s, d),
			straight: d == s.Direction,
		}
		if !found || o.beats(best) {
			best, found = o, true
		}
	}

	if !found {
		return s.Direction, false
	}
	return turn(s, best.dir)
}
