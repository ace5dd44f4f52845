package snake

import (
	"sync"
	"testing"
)

// newTestEngine returns the classic setup with a fixed seed and the target
// parked at (15,15), matching the reference opening position.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	e := New(cfg)
	e.target = Position{X: 15, Y: 15}
	return e
}

func assertActor(t *testing.T, got []Position, want ...Position) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("actor = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actor = %v, expected %v", got, want)
		}
	}
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(t)
	s := e.Snapshot()

	assertActor(t, s.Actor, Position{X: 10, Y: 10}, Position{X: 9, Y: 10}, Position{X: 8, Y: 10})
	if s.Direction != DirRight || s.Pending != DirRight {
		t.Errorf("direction = %v/%v, expected right/right", s.Direction, s.Pending)
	}
	if s.Status != StatusRunning {
		t.Errorf("status = %v, expected running", s.Status)
	}
	if s.Score != 0 || s.Tick != 0 {
		t.Errorf("score/tick = %d/%d, expected 0/0", s.Score, s.Tick)
	}
	if s.GridSize != 20 || s.Seed != 42 {
		t.Errorf("grid/seed = %d/%d, expected 20/42", s.GridSize, s.Seed)
	}
}

func TestFreshTargetIsOnGrid(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		s := New(cfg).Snapshot()
		if s.Target.X < 0 || s.Target.X >= 20 || s.Target.Y < 0 || s.Target.Y >= 20 {
			t.Fatalf("seed %d: target %v outside grid", seed, s.Target)
		}
	}
}

func TestFirstStep(t *testing.T) {
	e := newTestEngine(t)

	if o := e.Step(); o != OutcomeMoved {
		t.Fatalf("Step() = %v, expected moved", o)
	}

	s := e.Snapshot()
	assertActor(t, s.Actor, Position{X: 11, Y: 10}, Position{X: 10, Y: 10}, Position{X: 9, Y: 10})
	if s.Score != 0 || s.Status != StatusRunning {
		t.Errorf("score/status = %d/%v, expected 0/running", s.Score, s.Status)
	}
	if s.Tick != 1 {
		t.Errorf("tick = %d, expected 1", s.Tick)
	}
}

func TestFiveStepsStraight(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 5; i++ {
		e.Step()
	}

	s := e.Snapshot()
	if s.Head() != (Position{X: 15, Y: 10}) {
		t.Errorf("head = %v, expected (15,10)", s.Head())
	}
	if s.Target != (Position{X: 15, Y: 15}) {
		t.Errorf("target moved to %v, should be untouched", s.Target)
	}
	if s.Score != 0 || s.Len() != 3 {
		t.Errorf("score/len = %d/%d, expected 0/3", s.Score, s.Len())
	}
}

func TestTurnUp(t *testing.T) {
	e := newTestEngine(t)
	e.Step() // head at (11,10), moving right

	if !e.SetDirection(DirUp) {
		t.Fatal("up should be accepted while moving right")
	}
	// Not applied until the next tick
	if s := e.Snapshot(); s.Direction != DirRight || s.Pending != DirUp {
		t.Fatalf("direction/pending = %v/%v, expected right/up", s.Direction, s.Pending)
	}

	e.Step()
	s := e.Snapshot()
	if s.Head() != (Position{X: 11, Y: 9}) {
		t.Errorf("head = %v, expected (11,9)", s.Head())
	}
	if s.Direction != DirUp {
		t.Errorf("direction = %v, expected up", s.Direction)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	tests := []struct {
		moving   Direction
		reversed Direction
	}{
		{DirRight, DirLeft},
		{DirLeft, DirRight},
		{DirUp, DirDown},
		{DirDown, DirUp},
	}

	for _, tc := range tests {
		t.Run(tc.moving.String(), func(t *testing.T) {
			e := newTestEngine(t)
			e.direction = tc.moving
			e.pending = tc.moving

			if e.SetDirection(tc.reversed) {
				t.Errorf("reversal %v -> %v should be rejected", tc.moving, tc.reversed)
			}
			if e.pending != tc.moving {
				t.Errorf("pending = %v, should be unchanged", e.pending)
			}
		})
	}
}

func TestLastDirectionWinsWithinTick(t *testing.T) {
	e := newTestEngine(t)

	e.SetDirection(DirUp)
	e.SetDirection(DirDown) // not opposite of the committed right
	if e.pending != DirDown {
		t.Fatalf("pending = %v, expected down", e.pending)
	}

	// Left is still the reverse of the committed direction even after buffering up.
	e.SetDirection(DirUp)
	if e.SetDirection(DirLeft) {
		t.Error("left should be rejected while the committed direction is right")
	}

	e.Step()
	if s := e.Snapshot(); s.Head() != (Position{X: 10, Y: 9}) {
		t.Errorf("head = %v, expected (10,9)", s.Head())
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	e := newTestEngine(t)
	if e.SetDirection(Direction(9)) {
		t.Error("unknown direction should be ignored")
	}
	if e.pending != DirRight {
		t.Errorf("pending = %v, expected right", e.pending)
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		actor []Position
		dir   Direction
	}{
		{"right wall", []Position{{X: 19, Y: 10}, {X: 18, Y: 10}, {X: 17, Y: 10}}, DirRight},
		{"left wall", []Position{{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 2, Y: 10}}, DirLeft},
		{"top wall", []Position{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}, DirUp},
		{"bottom wall", []Position{{X: 5, Y: 19}, {X: 5, Y: 18}, {X: 5, Y: 17}}, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.actor = append([]Position(nil), tc.actor...)
			e.direction = tc.dir
			e.pending = tc.dir

			if o := e.Step(); o != OutcomeHitWall {
				t.Fatalf("Step() = %v, expected hit_wall", o)
			}

			s := e.Snapshot()
			if s.Status != StatusOver || s.End != OutcomeHitWall {
				t.Errorf("status/end = %v/%v, expected over/hit_wall", s.Status, s.End)
			}
			assertActor(t, s.Actor, tc.actor...)
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine(t)
	before := []Position{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	e.actor = append([]Position(nil), before...)
	e.direction = DirUp
	e.pending = DirRight // (6,5) is occupied

	if o := e.Step(); o != OutcomeHitSelf {
		t.Fatalf("Step() = %v, expected hit_self", o)
	}
	s := e.Snapshot()
	if s.Status != StatusOver {
		t.Errorf("status = %v, expected over", s.Status)
	}
	assertActor(t, s.Actor, before...)
}

func TestMovingIntoTailCellIsCollision(t *testing.T) {
	e := newTestEngine(t)
	before := []Position{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	e.actor = append([]Position(nil), before...)
	e.direction = DirLeft
	e.pending = DirDown // (5,6) is the tail

	if o := e.Step(); o != OutcomeHitSelf {
		t.Fatalf("Step() = %v, expected hit_self (tail counts before it moves)", o)
	}
	assertActor(t, e.Snapshot().Actor, before...)
}

func TestEatingGrowsAndScores(t *testing.T) {
	e := newTestEngine(t)
	e.target = Position{X: 11, Y: 10}

	if o := e.Step(); o != OutcomeAte {
		t.Fatalf("Step() = %v, expected ate", o)
	}

	s := e.Snapshot()
	assertActor(t, s.Actor, Position{X: 11, Y: 10}, Position{X: 10, Y: 10}, Position{X: 9, Y: 10}, Position{X: 8, Y: 10})
	if s.Score != 10 {
		t.Errorf("score = %d, expected 10", s.Score)
	}
	if s.Target.X < 0 || s.Target.X >= 20 || s.Target.Y < 0 || s.Target.Y >= 20 {
		t.Errorf("new target %v outside grid", s.Target)
	}
}

func TestCustomReward(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Reward = 25
	e := New(cfg)
	e.target = Position{X: 11, Y: 10}
	e.Step()

	if s := e.Snapshot(); s.Score != 25 {
		t.Errorf("score = %d, expected 25", s.Score)
	}
}

func TestNonConsumingMoveIsPureShift(t *testing.T) {
	e := newTestEngine(t)
	e.SetDirection(DirDown)
	e.Step()
	e.Step()
	before := e.Snapshot()

	e.SetDirection(DirLeft)
	e.Step()
	after := e.Snapshot()

	if after.Len() != before.Len() {
		t.Fatalf("length changed %d -> %d", before.Len(), after.Len())
	}
	if after.Head() != before.Head().Add(DirLeft.Delta()) {
		t.Errorf("head = %v, expected one step left of %v", after.Head(), before.Head())
	}
	for i := 1; i < after.Len(); i++ {
		if after.Actor[i] != before.Actor[i-1] {
			t.Errorf("segment %d = %v, expected %v", i, after.Actor[i], before.Actor[i-1])
		}
	}
}

func TestStepIsNoopWhenPausedOrOver(t *testing.T) {
	e := newTestEngine(t)
	e.TogglePause()
	before := e.Snapshot()

	if o := e.Step(); o != OutcomeIdle {
		t.Errorf("paused Step() = %v, expected idle", o)
	}
	if after := e.Snapshot(); after.Tick != before.Tick || after.Head() != before.Head() {
		t.Error("paused step should not change state")
	}

	e.TogglePause()
	e.status = StatusOver
	if o := e.Step(); o != OutcomeIdle {
		t.Errorf("over Step() = %v, expected idle", o)
	}
}

func TestTogglePause(t *testing.T) {
	e := newTestEngine(t)

	if s := e.TogglePause(); s != StatusPaused {
		t.Fatalf("first toggle = %v, expected paused", s)
	}
	if s := e.TogglePause(); s != StatusRunning {
		t.Fatalf("second toggle = %v, expected running", s)
	}

	e.status = StatusOver
	if s := e.TogglePause(); s != StatusOver {
		t.Errorf("toggle while over = %v, expected over", s)
	}
}

func TestDirectionIgnoredWhilePaused(t *testing.T) {
	e := newTestEngine(t)
	e.TogglePause()

	if e.SetDirection(DirUp) {
		t.Error("direction should be ignored while paused")
	}
	if e.pending != DirRight {
		t.Errorf("pending = %v, expected right", e.pending)
	}
}

func TestRestartFromAnyStatus(t *testing.T) {
	for _, status := range []Status{StatusRunning, StatusPaused, StatusOver} {
		t.Run(status.String(), func(t *testing.T) {
			e := newTestEngine(t)
			e.SetDirection(DirDown)
			e.Step()
			e.score = 70
			e.status = status

			e.Restart()
			s := e.Snapshot()

			assertActor(t, s.Actor, Position{X: 10, Y: 10}, Position{X: 9, Y: 10}, Position{X: 8, Y: 10})
			if s.Direction != DirRight || s.Pending != DirRight {
				t.Errorf("direction = %v/%v, expected right/right", s.Direction, s.Pending)
			}
			if s.Score != 0 || s.Status != StatusRunning || s.Tick != 0 || s.End != OutcomeIdle {
				t.Errorf("restart left %s", s)
			}
		})
	}
}

func TestRestartIsReproducible(t *testing.T) {
	a := New(Config{GridSize: 20, InitialLength: 3, StartHead: Position{X: 10, Y: 10}, Seed: 99})
	b := New(Config{GridSize: 20, InitialLength: 3, StartHead: Position{X: 10, Y: 10}, Seed: 99})
	a.Restart()
	b.Restart()

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Seed != sb.Seed || sa.Target != sb.Target {
		t.Errorf("restart diverged: %s vs %s", sa, sb)
	}
	if sa.Seed == 99 {
		t.Error("restart should derive a new seed")
	}

	// A fresh engine on the derived seed reproduces the restarted game.
	c := New(Config{GridSize: 20, InitialLength: 3, StartHead: Position{X: 10, Y: 10}, Seed: sa.Seed})
	if c.Snapshot().Target != sa.Target {
		t.Error("engine on derived seed should place the same target")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := newTestEngine(t)
	s := e.Snapshot()
	s.Actor[0] = Position{X: 0, Y: 0}

	if e.Snapshot().Head() != (Position{X: 10, Y: 10}) {
		t.Error("mutating a snapshot leaked into the engine")
	}

	// Snapshots taken before a step must not change afterwards either.
	old := e.Snapshot()
	e.Step()
	if old.Head() != (Position{X: 10, Y: 10}) {
		t.Error("old snapshot changed after Step")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() State {
		cfg := DefaultConfig()
		cfg.Seed = 12345
		e := New(cfg)
		for i := 0; i < 200; i++ {
			switch i % 9 {
			case 3:
				e.SetDirection(DirDown)
			case 5:
				e.SetDirection(DirLeft)
			case 7:
				e.SetDirection(DirUp)
			case 8:
				e.SetDirection(DirRight)
			}
			e.Step()
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.String() != s2.String() {
		t.Errorf("same seed and inputs diverged:\n%s\n%s", s1, s2)
	}
}

func TestActorNeverHasDuplicatesWhileAlive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 2024
	e := New(cfg)
	dirs := []Direction{DirDown, DirLeft, DirUp, DirRight}

	for i := 0; i < 500 && e.Status() == StatusRunning; i++ {
		e.SetDirection(dirs[(i/4)%len(dirs)])
		e.Step()

		s := e.Snapshot()
		if s.Status != StatusRunning {
			break
		}
		seen := make(map[Position]bool, s.Len())
		for _, p := range s.Actor {
			if seen[p] {
				t.Fatalf("tick %d: duplicate segment %v in %v", s.Tick, p, s.Actor)
			}
			seen[p] = true
		}
	}
}

func TestTargetFreePolicyAvoidsActor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 999
	cfg.Policy = TargetFree
	e := New(cfg)

	// Fill most of the board with a long actor.
	e.actor = e.actor[:0]
	for y := 0; y < 18; y++ {
		for x := 0; x < 20; x++ {
			e.actor = append(e.actor, Position{X: x, Y: y})
		}
	}

	for i := 0; i < 200; i++ {
		p := e.placeTarget()
		if e.occupied(p) {
			t.Fatalf("free policy placed target on actor at %v", p)
		}
		if p.Y < 18 {
			t.Fatalf("target %v should be in the free rows", p)
		}
	}
}

func TestTargetAnywherePolicyMayOverlap(t *testing.T) {
	e := newTestEngine(t)
	e.actor = e.actor[:0]
	for x := 0; x < 20; x++ {
		e.actor = append(e.actor, Position{X: x, Y: 0}, Position{X: x, Y: 1})
	}

	overlaps := 0
	for i := 0; i < 1000; i++ {
		if e.occupied(e.placeTarget()) {
			overlaps++
		}
	}
	if overlaps == 0 {
		t.Error("anywhere policy never landed on the actor; it should be permissive")
	}
}

func TestTargetFreeFallsBackWhenBoardFull(t *testing.T) {
	cfg := Config{GridSize: 2, InitialLength: 2, StartHead: Position{X: 1, Y: 0}, Policy: TargetFree, Seed: 3}
	e := New(cfg)
	e.actor = []Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	p := e.placeTarget()
	if p.X < 0 || p.X >= 2 || p.Y < 0 || p.Y >= 2 {
		t.Errorf("fallback target %v outside grid", p)
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{GridSize: 5, InitialLength: 8, StartHead: Position{X: 0, Y: 9}}.normalize()

	if c.InitialLength != 5 {
		t.Errorf("InitialLength = %d, expected clamp to 5", c.InitialLength)
	}
	if c.StartHead != (Position{X: 4, Y: 4}) {
		t.Errorf("StartHead = %v, expected (4,4)", c.StartHead)
	}
	if c.Reward != 10 || c.Policy != TargetAnywhere {
		t.Errorf("defaults not applied: %+v", c)
	}

	e := New(Config{GridSize: 5, InitialLength: 8, StartHead: Position{X: 0, Y: 9}, Seed: 1})
	for _, p := range e.Snapshot().Actor {
		if p.X < 0 || p.X >= 5 || p.Y < 0 || p.Y >= 5 {
			t.Fatalf("initial actor %v leaves the grid", e.Snapshot().Actor)
		}
	}
}

func TestConcurrentInputDuringSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	e := New(cfg)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dirs := []Direction{DirUp, DirLeft, DirDown, DirRight}
		for i := 0; i < 1000; i++ {
			e.SetDirection(dirs[i%len(dirs)])
		}
	}()

	for i := 0; i < 100; i++ {
		e.Step()
		s := e.Snapshot()
		if s.Direction.IsOpposite(s.Pending) {
			t.Fatalf("pending %v reverses committed %v", s.Pending, s.Direction)
		}
	}
	wg.Wait()
}

func TestDirectionHelpers(t *testing.T) {
	if DirUp.Opposite() != DirDown || DirLeft.Opposite() != DirRight {
		t.Error("Opposite() is wrong")
	}
	if DirUp.IsOpposite(DirLeft) {
		t.Error("up and left are not opposite")
	}
	if d := DirUp.Delta(); d.X != 0 || d.Y != -1 {
		t.Errorf("up delta = %v, expected (0,-1)", d)
	}
	if OutcomeMoved.Terminal() || !OutcomeHitSelf.Terminal() {
		t.Error("Terminal() misclassified an outcome")
	}
}
