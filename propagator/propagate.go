package propagator

import "github.com/katalvlaran/wfc/topology"

// propagateQueue drains the elimination queue to a fixed point. For each
// dequeued (cell, pattern), and for every direction d with an in-bounds
// neighbor n = neighbor(cell, d), every pattern t in
// model.Propagator[pattern][d] loses one unit of support at n coming back
// via inverse(d); a support count reaching zero eliminates t at n and
// enqueues it in turn. The queue is always drained fully (even once a
// contradiction has been flagged) so that every enqueued elimination's
// compat decrements are actually applied — undo() in backtrack.go depends
// on that, and discards whatever drainAndCheck left queued when it returned
// a contradiction early.
func (p *WavePropagator) propagateQueue() Status {
	numDirections := p.topo.Directions.Count()
	for len(p.queue) > 0 {
		ev := p.queue[0]
		p.queue = p.queue[1:]

		for d := 0; d < numDirections; d++ {
			n, ok := p.topo.TryMove(ev.cell, topology.Direction(d))
			if !ok {
				continue
			}
			invD := int(p.topo.Directions.Inverse(topology.Direction(d)))
			for _, t := range p.model.Propagator[ev.pattern][d] {
				cnt := &p.compat[n][t][invD]
				if *cnt == 0 {
					continue
				}
				*cnt--
				p.recordDecrement(n, t, invD)
				if *cnt == 0 && p.wv.IsPossible(n, t) {
					p.eliminate(n, t)
				}
			}
		}
	}
	if p.contradictedCell >= 0 {
		return StatusContradiction
	}
	return StatusUndecided
}

// drainAndCheck alternates propagateQueue with a full pass over every
// constraint's Check until a round makes no further changes. Constraints
// signal changes only through EnqueueSelect/EnqueueBan, which is why a round is
// considered dirty whenever changeCounter moved during it.
func (p *WavePropagator) drainAndCheck() Status {
	for {
		if status := p.propagateQueue(); status == StatusContradiction {
			return status
		}
		before := p.changeCounter
		for _, c := range p.constraints {
			if c.Check(p) == StatusContradiction {
				return StatusContradiction
			}
			if p.contradictedCell >= 0 {
				return StatusContradiction
			}
		}
		if p.changeCounter == before {
			return StatusUndecided
		}
		// A constraint changed the wave; its eliminations are already
		// queued, so loop back into propagateQueue before checking again.
	}
}
