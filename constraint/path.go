package constraint

import (
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
)

// PathConstraint keeps every "relevant" cell — an explicit endpoint, or
// (absent endpoints) every cell already forced to a path tile — connected
// to every other relevant cell through cells that could still hold a
// path tile. One graph node per topology cell; edges connect cells
// adjacent in any direction, per §4.5 of the design spec.
type PathConstraint struct {
	PathTiles *pattern.TileSet
	Endpoints []int // nil: derive relevant cells from already-decided path tiles

	g        *graph
	walkable []bool
}

// NewPathConstraint builds a PathConstraint over pathTiles, optionally
// restricted to the given explicit endpoint cells.
func NewPathConstraint(pathTiles *pattern.TileSet, endpoints []int) *PathConstraint {
	return &PathConstraint{PathTiles: pathTiles, Endpoints: endpoints}
}

// Init builds the derived graph once from the topology and runs the
// first Check.
func (c *PathConstraint) Init(p *propagator.WavePropagator) propagator.Status {
	topo := p.Topology()
	n := topo.CellCount()
	c.g = newGraph(n)
	for cell := 0; cell < n; cell++ {
		if topo.Masked(cell) {
			continue
		}
		for d := 0; d < topo.Directions.Count(); d++ {
			if nb, ok := topo.TryMove(cell, topology.Direction(d)); ok && nb > cell {
				c.g.addEdge(cell, nb)
			}
		}
	}
	c.walkable = make([]bool, n)
	return c.Check(p)
}

func (c *PathConstraint) relevantCells(p *propagator.WavePropagator) []int {
	if c.Endpoints != nil {
		return c.Endpoints
	}
	w := p.Wave()
	var out []int
	for cell := 0; cell < p.Topology().CellCount(); cell++ {
		if pat, ok := w.DecidedPattern(cell); ok && c.PathTiles.Contains(pat) {
			out = append(out, cell)
		}
	}
	return out
}

// Check refreshes walkable flags, verifies every relevant cell is still
// reachable, and forces every articulation cell to a path tile.
func (c *PathConstraint) Check(p *propagator.WavePropagator) propagator.Status {
	w := p.Wave()
	n := p.Topology().CellCount()
	for cell := 0; cell < n; cell++ {
		c.walkable[cell] = cellHasAnyOf(w, cell, c.PathTiles)
	}

	relevant := c.relevantCells(p)
	if len(relevant) == 0 {
		return propagator.StatusUndecided
	}
	reached := bfsReachable(c.g, c.walkable, relevant[0])
	for _, r := range relevant {
		if !c.walkable[r] || !reached[r] {
			return propagator.StatusContradiction
		}
	}

	for _, a := range articulationPoints(c.g, c.walkable, relevant) {
		p.EnqueueSelect(a, c.PathTiles.Bits())
		if w.Contradicted(a) {
			return propagator.StatusContradiction
		}
	}
	return propagator.StatusUndecided
}
