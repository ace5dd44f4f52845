// Package snake implements the game-state update engine: a single actor moving on a
// bounded square grid, growing when it eats the target and ending on a wall or
// self collision.
//
// The engine owns its state exclusively. Callers mutate it only through
// SetDirection, TogglePause, Step and Restart, and observe it only through
// Snapshot copies, so a partially updated tick is never visible.
package snake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TargetPolicy decides where a new target may be placed.
type TargetPolicy string

const (
	// TargetAnywhere picks uniformly over the whole grid; the target may land
	// under the actor.
	TargetAnywhere TargetPolicy = "anywhere"
	// TargetFree picks uniformly over the cells the actor does not occupy.
	TargetFree TargetPolicy = "free"
)

// Config holds the fixed parameters of a game.
type Config struct {
	GridSize      int
	InitialLength int
	StartHead     Position // Initial head; the body trails to the left
	Reward        int      // Score per target
	Policy        TargetPolicy
	Seed          int64 // 0 picks a time-based seed
}

// DefaultConfig returns the classic 20×20 setup.
func DefaultConfig() Config {
	return Config{
		GridSize:      20,
		InitialLength: 3,
		StartHead:     Position{X: 10, Y: 10},
		Reward:        10,
		Policy:        TargetAnywhere,
	}
}

// normalize fills zero fields with defaults and pulls the start head back
// inside the grid so the initial actor always fits.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.GridSize <= 0 {
		c.GridSize = def.GridSize
	}
	if c.InitialLength <= 0 {
		c.InitialLength = def.InitialLength
	}
	c.InitialLength = min(c.InitialLength, c.GridSize)
	if c.Reward <= 0 {
		c.Reward = def.Reward
	}
	if c.Policy != TargetFree {
		c.Policy = TargetAnywhere
	}
	c.StartHead.X = core.Clamp(c.StartHead.X, c.InitialLength-1, c.GridSize-1)
	c.StartHead.Y = core.Clamp(c.StartHead.Y, 0, c.GridSize-1)
	return c
}

// Engine is the authoritative game state plus the fixed-tick update algorithm.
// All methods are safe for concurrent use; Step calls are serialized.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	bounds core.Rect
	rng    *rand.Rand
	seed   int64

	actor     []Position // Head at index 0
	target    Position
	direction Direction
	pending   Direction // Buffered direction for next move
	status    Status
	score     int
	tick      uint64
	end       Outcome
}

// New creates an engine in the initial state, running.
func New(cfg Config) *Engine {
	cfg = cfg.normalize()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:    cfg,
		bounds: core.Square(cfg.GridSize),
	}
	e.reset(seed)
	return e
}

// reset rebuilds the whole state from a seed. Caller holds mu or owns e.
func (e *Engine) reset(seed int64) {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))

	e.actor = make([]Position, e.cfg.InitialLength)
	for i := range e.actor {
		e.actor[i] = Position{X: e.cfg.StartHead.X - i, Y: e.cfg.StartHead.Y}
	}
	e.direction = DirRight
	e.pending = DirRight
	e.status = StatusRunning
	e.score = 0
	e.tick = 0
	e.end = OutcomeIdle
	e.target = e.placeTarget()
}

// SetDirection buffers d for the next tick. It is accepted only while running
// and only if d does not reverse the direction used on the current tick.
// Repeated calls within one tick overwrite each other; the last one wins.
func (e *Engine) SetDirection(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning || !d.Valid() || d.IsOpposite(e.direction) {
		return false
	}
	e.pending = d
	return true
}

// TogglePause switches between running and paused and returns the new status.
// A finished game stays over.
func (e *Engine) TogglePause() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusRunning
	}
	return e.status
}

// Step advances the simulation by exactly one tick.
func (e *Engine) Step() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning {
		return OutcomeIdle
	}
	e.tick++

	e.direction = e.pending
	head := e.actor[0].Add(e.direction.Delta())

	// The illegal head is never written into the actor.
	if !e.bounds.Contains(head) {
		return e.finish(OutcomeHitWall)
	}
	// Checked against every segment before the tail moves, tail included.
	if e.occupied(head) {
		return e.finish(OutcomeHitSelf)
	}

	if head == e.target {
		e.actor = append(e.actor, Position{})
		copy(e.actor[1:], e.actor[:len(e.actor)-1])
		e.actor[0] = head
		e.score += e.cfg.Reward
		e.target = e.placeTarget()
		return OutcomeAte
	}

	copy(e.actor[1:], e.actor[:len(e.actor)-1])
	e.actor[0] = head
	return OutcomeMoved
}

func (e *Engine) finish(o Outcome) Outcome {
	e.status = StatusOver
	e.end = o
	return o
}

// Restart replaces the whole state with a fresh game, from any status.
// The new game is seeded from the current RNG so a session stays reproducible
// from its first seed.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset(e.rng.Int63())
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor := make([]Position, len(e.actor))
	copy(actor, e.actor)

	return State{
		Actor:     actor,
		Target:    e.target,
		Direction: e.direction,
		Pending:   e.pending,
		Status:    e.status,
		Score:     e.score,
		Tick:      e.tick,
		End:       e.end,
		GridSize:  e.cfg.GridSize,
		Seed:      e.seed,
	}
}

// Status returns the current status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Tick returns the number of steps processed while running in the current game.
func (e *Engine) Tick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Seed returns the seed of the current game.
func (e *Engine) Seed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seed
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) occupied(p Position) bool {
	for _, seg := range e.actor {
		if seg == p {
			return true
		}
	}
	return false
}
