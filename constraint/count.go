package constraint

import (
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
)

// CountCmp selects which side(s) of K a CountConstraint enforces.
type CountCmp int

const (
	AtMost CountCmp = iota
	AtLeast
	Exactly
)

// CountConstraint bounds how many cells end up decided to a pattern in
// Tiles. Every Check recomputes yes (cells already decided to Tiles) and
// maybe (undecided cells where some Tiles pattern remains possible) from
// scratch — see §4.6 of the design spec for the per-comparison rules.
type CountConstraint struct {
	Tiles *pattern.TileSet
	K     int
	Cmp   CountCmp
	Eager bool // for AtMost, also force exactness once maybe+yes == K
}

// NewCountConstraint builds a CountConstraint over tiles.
func NewCountConstraint(tiles *pattern.TileSet, k int, cmp CountCmp, eager bool) *CountConstraint {
	return &CountConstraint{Tiles: tiles, K: k, Cmp: cmp, Eager: eager}
}

func (c *CountConstraint) Init(p *propagator.WavePropagator) propagator.Status {
	return c.Check(p)
}

func (c *CountConstraint) Check(p *propagator.WavePropagator) propagator.Status {
	w := p.Wave()
	topo := p.Topology()
	n := topo.CellCount()

	yes := 0
	var maybeCells []int
	for cell := 0; cell < n; cell++ {
		if topo.Masked(cell) {
			continue
		}
		if pat, ok := w.DecidedPattern(cell); ok {
			if c.Tiles.Contains(pat) {
				yes++
			}
			continue
		}
		if cellHasAnyOf(w, cell, c.Tiles) {
			maybeCells = append(maybeCells, cell)
		}
	}
	maybe := len(maybeCells)

	if c.Cmp == AtMost || c.Cmp == Exactly {
		switch {
		case yes > c.K:
			return propagator.StatusContradiction
		case yes == c.K:
			for _, cell := range maybeCells {
				p.EnqueueBan(cell, c.Tiles.Bits())
				if w.Contradicted(cell) {
					return propagator.StatusContradiction
				}
			}
		case c.Cmp == AtMost && c.Eager && maybe+yes == c.K:
			for _, cell := range maybeCells {
				p.EnqueueSelect(cell, c.Tiles.Bits())
				if w.Contradicted(cell) {
					return propagator.StatusContradiction
				}
			}
		}
	}
	if c.Cmp == AtLeast || c.Cmp == Exactly {
		if yes+maybe < c.K {
			return propagator.StatusContradiction
		}
		if yes+maybe == c.K {
			for _, cell := range maybeCells {
				p.EnqueueSelect(cell, c.Tiles.Bits())
				if w.Contradicted(cell) {
					return propagator.StatusContradiction
				}
			}
		}
	}
	return propagator.StatusUndecided
}
