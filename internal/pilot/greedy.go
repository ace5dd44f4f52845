package pilot

import (
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

func init() {
	registry.Register("greedy", func() registry.Pilot { return NewGreedy() })
}

// Greedy heads straight for the target and ignores danger.
type Greedy struct{}

// NewGreedy creates a greedy pilot.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// ID returns the pilot identifier.
func (g *Greedy) ID() string { return "greedy" }

// Title returns the display name.
func (g *Greedy) Title() string { return "Greedy" }

// Reset is a no-op; the greedy pilot is stateless.
func (g *Greedy) Reset(int64) {}

// Next picks the legal direction closest to the target, keeping the
// current heading on ties.
func (g *Greedy) Next(s snake.State) (snake.Direction, bool) {
	best := s.Direction
	bestDist := distance(s, best)
	for _, d := range candidates(s) {
		if dist := distance(s, d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return turn(s, best)
}
