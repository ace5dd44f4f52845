package pilot

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// TurnChance is how often the random pilot turns while going straight is safe.
const TurnChance = 0.2

func init() {
	registry.Register("random", func() registry.Pilot { return NewRandom() })
}

// Random wanders: it mostly keeps its heading and sometimes turns to a
// random safe direction.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random pilot seeded with 1. Call Reset to reseed.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(1))}
}

func (r *Random) ID() string { return "random" }

func (r *Random) Title() string { return "Random Walk" }

// Reset reseeds the pilot so a game and its pilot share one seed.
func (r *Random) Reset(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

func (r *Random) Next(s snake.State) (snake.Direction, bool) {
	straight := safe(s, s.Direction)
	if straight && r.rng.Float64() >= TurnChance {
		return s.Direction, false
	}

	var options []snake.Direction
	for _, d := range candidates(s) {
		if d != s.Direction && safe(s, d) {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return s.Direction, false
	}
	return turn(s, options[r.rng.Intn(len(options))])
}
