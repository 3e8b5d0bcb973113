package propagator

// backtrack unwinds observation frames until propagation succeeds or the
// BacktrackDepth budget (or the stack itself) is exhausted. Each pop
// restores every elimination the frame caused, then bans the frame's
// originally chosen (cell, pattern) at the level now exposed — the
// collapse that led to the contradiction is never retried.
func (p *WavePropagator) backtrack() Status {
	pops := 0
	for {
		if p.backtrackDepth >= 0 && pops >= p.backtrackDepth {
			return StatusContradiction
		}
		if len(p.stack) == 0 {
			return StatusContradiction
		}

		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		p.undo(top)
		pops++
		p.backtrackCount++
		if p.metrics != nil {
			p.metrics.IncBacktrack()
		}
		if p.logger != nil {
			p.logger.Event("backtrack", map[string]interface{}{"cell": top.cell, "pattern": top.pattern})
		}

		p.contradictedCell = -1
		p.eliminate(top.cell, top.pattern)
		if status := p.drainAndCheck(); status != StatusContradiction {
			return status
		}
	}
}

// undo reverses every change a frame recorded, in reverse order: recorded
// compat decrements are re-incremented first, then wave bits are restored
// — the order compat decrements and wave eliminations happened in, mirrored.
func (p *WavePropagator) undo(f *frame) {
	for i := len(f.decrements) - 1; i >= 0; i-- {
		d := f.decrements[i]
		p.compat[d.cell][d.pattern][d.direction]++
	}
	for i := len(f.changes) - 1; i >= 0; i-- {
		ch := f.changes[i]
		p.wv.Restore(ch.cell, ch.pattern)
	}
	// Eliminations still queued when the contradiction surfaced (e.g. ones
	// a constraint's Check enqueued just before reporting it) were recorded
	// on this frame and have just been restored; propagating them later
	// would strip support from patterns that are possible again.
	p.queue = nil
	p.contradictedCell = -1
}
