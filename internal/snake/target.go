package snake

// placeTarget picks the next target position according to the configured policy.
// Caller holds mu.
func (e *Engine) placeTarget() Position {
	n := e.cfg.GridSize

	if e.cfg.Policy == TargetFree {
		free := make([]Position, 0, n*n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				p := Position{X: x, Y: y}
				if !e.occupied(p) {
					free = append(free, p)
				}
			}
		}
		if len(free) > 0 {
			return free[e.rng.Intn(len(free))]
		}
		// Board full: nothing is free, fall back to the permissive rule.
	}

	return Position{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
}
