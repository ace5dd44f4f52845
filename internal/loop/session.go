package loop

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Driver picks a direction each tick in place of a human player.
type Driver interface {
	ID() string
	Next(s snake.State) (snake.Direction, bool)
}

// reseeder is implemented by drivers that use randomness. They are reseeded
// from the game seed at every (re)start.
type reseeder interface {
	Reset(seed int64)
}

// Options configures a Session. Every field is optional.
type Options struct {
	Interval time.Duration
	Logger   *log.Logger
	Driver   Driver
	// MaxTicks caps each run. A capped run is journaled with reason
	// "limit" and stays halted until the next restart. Zero means no cap.
	MaxTicks uint64

	// OnFrame receives a snapshot after every step.
	OnFrame func(snake.State)
	// OnRun receives each finished run exactly once. It runs on the tick
	// goroutine when the game ends by collision and must not block.
	OnRun func(storage.Run)
}

// Stats are cumulative session counters.
type Stats struct {
	Ticks    uint64 // Ticker callbacks
	Moves    uint64 // Steps that moved the actor
	Meals    uint64 // Targets eaten
	Runs     uint64 // Runs finished
	Accepted uint64 // Actions the controller accepted
	Rejected uint64 // Actions the controller dropped
}

// Session runs one engine on a ticker, routes actions through the input
// controller and journals every run.
type Session struct {
	engine  *snake.Engine
	ctrl    *input.Controller
	ticker  *Ticker
	journal *replay.Journal
	logger  *log.Logger
	driver  Driver
	maxTick uint64
	capped  atomic.Bool
	onFrame func(snake.State)
	onRun   func(storage.Run)

	// actMu keeps journal order equal to application order: an action is
	// recorded and applied without a step in between.
	actMu sync.Mutex

	ctxMu sync.Mutex
	ctx   context.Context

	ticks, moves, meals, runs atomic.Uint64
	accepted, rejected        atomic.Uint64
}

// NewSession wires a session around an engine. The ticker is not started.
func NewSession(e *snake.Engine, opts Options) *Session {
	if opts.Interval <= 0 {
		opts.Interval = 150 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var pilot string
	if opts.Driver != nil {
		pilot = opts.Driver.ID()
	}

	s := &Session{
		engine:  e,
		ctrl:    input.NewController(e),
		journal: replay.NewJournal(e, pilot),
		logger:  opts.Logger,
		driver:  opts.Driver,
		maxTick: opts.MaxTicks,
		onFrame: opts.OnFrame,
		onRun:   opts.OnRun,
		ctx:     context.Background(),
	}
	s.ticker = NewTicker(opts.Interval, s.tick)
	s.reseedDriver()
	return s
}

// Start begins ticking if the game is running. Cancelling ctx stops the
// ticker but does not finish the run; call Stop for that.
func (s *Session) Start(ctx context.Context) {
	s.ctxMu.Lock()
	s.ctx = ctx
	s.ctxMu.Unlock()

	s.reconcile()
}

// Stop halts the ticker and journals the current run as abandoned.
func (s *Session) Stop() {
	s.ticker.Stop()
	s.finishRun(replay.EndQuit)
}

// Dispatch applies a player action. It returns false for quit, which stops
// the session, and for actions the controller rejected.
// Must not be called from OnFrame or OnRun.
func (s *Session) Dispatch(a core.Action) bool {
	switch a {
	case core.ActionQuit:
		s.Stop()
		return false

	case core.ActionRestart:
		s.ticker.Stop()
		s.finishRun(replay.EndRestart)
		s.apply(a)
		s.journal.Begin()
		s.capped.Store(false)
		s.reseedDriver()
		s.logger.Debug("restart", "seed", s.engine.Seed())
		s.reconcile()
		return true
	}

	ok := s.apply(a)
	s.reconcile()
	return ok
}

func (s *Session) apply(a core.Action) bool {
	s.actMu.Lock()
	defer s.actMu.Unlock()

	s.journal.Record(a)
	ok := s.ctrl.Handle(a)
	if ok {
		s.accepted.Add(1)
	} else {
		s.rejected.Add(1)
	}
	return ok
}

func (s *Session) reseedDriver() {
	if r, ok := s.driver.(reseeder); ok {
		r.Reset(s.engine.Seed())
	}
}

// reconcile keeps the ticker alive exactly while the game is running.
func (s *Session) reconcile() {
	if s.engine.Status() != snake.StatusRunning || s.capped.Load() {
		s.ticker.Stop()
		return
	}

	s.ctxMu.Lock()
	ctx := s.ctx
	s.ctxMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	s.ticker.Start(ctx)
}

// tick runs on the ticker goroutine. Returning false ends the loop.
func (s *Session) tick() bool {
	s.ticks.Add(1)

	s.actMu.Lock()
	if s.driver != nil && s.engine.Status() == snake.StatusRunning {
		if d, ok := s.driver.Next(s.engine.Snapshot()); ok {
			a := input.ActionFor(d)
			s.journal.Record(a)
			if s.ctrl.Handle(a) {
				s.accepted.Add(1)
			} else {
				s.rejected.Add(1)
			}
		}
	}
	outcome := s.engine.Step()
	s.actMu.Unlock()

	switch outcome {
	case snake.OutcomeIdle:
		return false
	case snake.OutcomeAte:
		s.meals.Add(1)
		s.moves.Add(1)
	case snake.OutcomeMoved:
		s.moves.Add(1)
	}

	if s.onFrame != nil {
		s.onFrame(s.engine.Snapshot())
	}

	if outcome.Terminal() {
		s.logger.Info("game over", "reason", outcome, "tick", s.engine.Tick())
		s.finishRun("")
		return false
	}
	if s.maxTick > 0 && s.engine.Tick() >= s.maxTick {
		s.logger.Info("tick cap reached", "tick", s.engine.Tick())
		s.capped.Store(true)
		s.finishRun(replay.EndLimit)
		return false
	}
	return true
}

// finishRun hands the current run to OnRun unless it was already finished.
func (s *Session) finishRun(reason string) {
	run, ok := s.journal.Finish(reason)
	if !ok {
		return
	}
	s.runs.Add(1)
	s.logger.Debug("run finished", "reason", run.EndReason, "score", run.Score, "ticks", run.Ticks)
	if s.onRun != nil {
		s.onRun(run)
	}
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() snake.State {
	return s.engine.Snapshot()
}

// Ticking reports whether the ticker is running.
func (s *Session) Ticking() bool {
	return s.ticker.Running()
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Ticks:    s.ticks.Load(),
		Moves:    s.moves.Load(),
		Meals:    s.meals.Load(),
		Runs:     s.runs.Load(),
		Accepted: s.accepted.Load(),
		Rejected: s.rejected.Load(),
	}
}
