package constraint

import (
	"errors"

	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
	"github.com/katalvlaran/wfc/wfcerr"
)

// ExitMask is a bitmask over direction indices: bit d set means the tile
// extends a path edge in direction d (e.g. a box-drawing glyph's open
// sides).
type ExitMask uint32

// Has reports whether direction d is set in the mask.
func (m ExitMask) Has(d int) bool { return m&(1<<uint(d)) != 0 }

// ErrNonCartesian2D is a programmer error: EdgedPathConstraint's
// half-edge graph only has a meaningful "opposing half-edge" when every
// cell has exactly the 4 Cartesian2D directions. See DESIGN.md's Open
// Question entry on this restriction.
var ErrNonCartesian2D = errors.New("constraint: EdgedPathConstraint requires a 4-direction Cartesian2D topology")

// EdgedPathConstraint is PathConstraint's edge-aware variant: per cell c
// it models one central node plus one half-edge node per direction
// (D+1 nodes total). The central node connects to each of its half-edge
// nodes; half-edge node (c,d) connects to the central node and to the
// opposing half-edge node (tryMove(c,d), inv(d)) — a path entering c from
// direction d must be admitted by c's tile's exit set for d. See §4.5 of
// the design spec.
type EdgedPathConstraint struct {
	Exits     []ExitMask // per pattern index
	Endpoints []int      // cell indices; nil derives relevance from decided path tiles

	g            *graph
	walkable     []bool
	numCells     int
	numDirs      int
	pathTileBits *pattern.TileSet
	exitTileBits []*pattern.TileSet // per direction
}

// NewEdgedPathConstraint builds an EdgedPathConstraint from a per-pattern
// exit mask table, optionally restricted to explicit endpoint cells.
func NewEdgedPathConstraint(exits []ExitMask, endpoints []int) *EdgedPathConstraint {
	return &EdgedPathConstraint{Exits: exits, Endpoints: endpoints}
}

// Init rejects any topology whose DirectionSet is not exactly
// Cartesian2D — a programmer error, surfaced as a panic since Init's
// signature has no error return (see the Constraint interface) — builds
// the half-edge graph, and runs the first Check.
func (c *EdgedPathConstraint) Init(p *propagator.WavePropagator) propagator.Status {
	topo := p.Topology()
	if !topo.Directions.IsCartesian2D() {
		panic(wfcerr.Programmer(ErrNonCartesian2D))
	}
	c.numCells = topo.CellCount()
	c.numDirs = topo.Directions.Count()
	stride := c.numDirs + 1

	numPatterns := p.Model().NumPatterns()
	var pathPatterns []int
	perDirPatterns := make([][]int, c.numDirs)
	for pat := 0; pat < numPatterns && pat < len(c.Exits); pat++ {
		if c.Exits[pat] != 0 {
			pathPatterns = append(pathPatterns, pat)
		}
		for d := 0; d < c.numDirs; d++ {
			if c.Exits[pat].Has(d) {
				perDirPatterns[d] = append(perDirPatterns[d], pat)
			}
		}
	}
	c.pathTileBits = pattern.NewTileSetFromPatterns(numPatterns, pathPatterns)
	c.exitTileBits = make([]*pattern.TileSet, c.numDirs)
	for d := 0; d < c.numDirs; d++ {
		c.exitTileBits[d] = pattern.NewTileSetFromPatterns(numPatterns, perDirPatterns[d])
	}

	c.g = newGraph(c.numCells * stride)
	for cell := 0; cell < c.numCells; cell++ {
		if topo.Masked(cell) {
			continue
		}
		central := cell * stride
		for d := 0; d < c.numDirs; d++ {
			half := central + 1 + d
			c.g.addEdge(central, half)
			nb, ok := topo.TryMove(cell, topology.Direction(d))
			if !ok {
				continue
			}
			invD := int(topo.Directions.Inverse(topology.Direction(d)))
			nbHalf := nb*stride + 1 + invD
			if nbHalf > half {
				c.g.addEdge(half, nbHalf)
			}
		}
	}
	c.walkable = make([]bool, c.numCells*stride)
	return c.Check(p)
}

func (c *EdgedPathConstraint) relevantCentralNodes(p *propagator.WavePropagator) []int {
	stride := c.numDirs + 1
	if c.Endpoints != nil {
		out := make([]int, len(c.Endpoints))
		for i, cell := range c.Endpoints {
			out[i] = cell * stride
		}
		return out
	}
	w := p.Wave()
	var out []int
	for cell := 0; cell < c.numCells; cell++ {
		if pat, ok := w.DecidedPattern(cell); ok && c.pathTileBits.Contains(pat) {
			out = append(out, cell*stride)
		}
	}
	return out
}

// Check refreshes walkable flags over every central and half-edge node,
// verifies relevant central nodes stay reachable, and forces every
// articulation node to the tile set it represents.
func (c *EdgedPathConstraint) Check(p *propagator.WavePropagator) propagator.Status {
	w := p.Wave()
	stride := c.numDirs + 1
	for cell := 0; cell < c.numCells; cell++ {
		central := cell * stride
		c.walkable[central] = cellHasAnyOf(w, cell, c.pathTileBits)
		for d := 0; d < c.numDirs; d++ {
			c.walkable[central+1+d] = cellHasAnyOf(w, cell, c.exitTileBits[d])
		}
	}

	relevant := c.relevantCentralNodes(p)
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
		cell := a / stride
		rem := a % stride
		if rem == 0 {
			p.EnqueueSelect(cell, c.pathTileBits.Bits())
		} else {
			p.EnqueueSelect(cell, c.exitTileBits[rem-1].Bits())
		}
		if w.Contradicted(cell) {
			return propagator.StatusContradiction
		}
	}
	return propagator.StatusUndecided
}
