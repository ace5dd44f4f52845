// Package pilot implements autopilots that steer the actor from snapshots.
// Each pilot registers itself with the registry in init().
package pilot

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var allDirections = [...]snake.Direction{snake.DirRight, snake.DirDown, snake.DirLeft, snake.DirUp}

// candidates returns the directions the engine would accept next: all but the
// reverse of the committed direction.
func candidates(s snake.State) []snake.Direction {
	out := make([]snake.Direction, 0, 3)
	for _, d := range allDirections {
		if !d.IsOpposite(s.Direction) {
			out = append(out, d)
		}
	}
	return out
}

// nextHead returns where the head lands after moving in d.
func nextHead(s snake.State, d snake.Direction) snake.Position {
	return s.Head().Add(d.Delta())
}

// safe reports whether moving in d survives the coming tick. Every segment
// counts as an obstacle, the tail included.
func safe(s snake.State, d snake.Direction) bool {
	p := nextHead(s, d)
	return core.Square(s.GridSize).Contains(p) && !s.Occupies(p)
}

// distance is the Manhattan distance from the next head to the target.
func distance(s snake.State, d snake.Direction) int {
	return nextHead(s, d).Manhattan(s.Target)
}

// reachable counts the free cells connected to p, stopping at limit.
func reachable(s snake.State, p snake.Position, limit int) int {
	bounds := core.Square(s.GridSize)
	if !bounds.Contains(p) || s.Occupies(p) {
		return 0
	}

	seen := map[snake.Position]bool{p: true}
	queue := []snake.Position{p}
	for len(queue) > 0 && len(seen) < limit {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range allDirections {
			n := cur.Add(d.Delta())
			if seen[n] || !bounds.Contains(n) || s.Occupies(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return min(len(seen), limit)
}

// turn reports d as a request only when it differs from the pending direction.
func turn(s snake.State, d snake.Direction) (snake.Direction, bool) {
	return d, d != s.Pending
}
