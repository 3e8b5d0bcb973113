package tilepropagator

import (
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
)

// TilePropagator is the tile-typed view of a propagator.WavePropagator: it
// accepts and returns caller tiles of type T instead of pattern indices.
// T must be comparable, per the Design Note on tile identity — no
// hash-wrapper indirection is needed.
type TilePropagator[T comparable] struct {
	prop          *propagator.WavePropagator
	tileToPattern map[T]int
	patternToTile []T
}

// New wraps prop with the tile<->pattern maps a pattern.Builder produced.
func New[T comparable](prop *propagator.WavePropagator, tileToPattern map[T]int, patternToTile []T) *TilePropagator[T] {
	return &TilePropagator[T]{prop: prop, tileToPattern: tileToPattern, patternToTile: patternToTile}
}

// Propagator exposes the underlying pattern-indexed engine, for callers
// that need direct access (e.g. to its Wave). Constraints are fixed when
// the propagator is constructed; none can be added through this accessor.
func (tp *TilePropagator[T]) Propagator() *propagator.WavePropagator { return tp.prop }

// Topology returns the topology the wrapped propagator was built over.
func (tp *TilePropagator[T]) Topology() *topology.Topology { return tp.prop.Topology() }

// Status, Step, Run, Clear, BacktrackCount and StepCount pass straight
// through to the wrapped propagator.
func (tp *TilePropagator[T]) Status() propagator.Status    { return tp.prop.Status() }
func (tp *TilePropagator[T]) Step() propagator.Status      { return tp.prop.Step() }
func (tp *TilePropagator[T]) Run(maxSteps int) propagator.Status { return tp.prop.Run(maxSteps) }
func (tp *TilePropagator[T]) Clear()                        { tp.prop.Clear() }
func (tp *TilePropagator[T]) BacktrackCount() int           { return tp.prop.BacktrackCount() }
func (tp *TilePropagator[T]) StepCount() int                { return tp.prop.StepCount() }

func (tp *TilePropagator[T]) tileSet(tiles []T) (*pattern.TileSet, error) {
	return pattern.NewTileSet(tp.tileToPattern, tiles)
}

// Select restricts cell to exactly the given tiles (eliminating every
// other currently-possible tile there), then propagates and resolves any
// contradiction per the wrapped propagator's backtrack policy.
func (tp *TilePropagator[T]) Select(cell int, tiles ...T) (propagator.Status, error) {
	ts, err := tp.tileSet(tiles)
	if err != nil {
		return tp.prop.Status(), err
	}
	return tp.prop.Select(cell, ts.Bits()), nil
}

// Ban eliminates the given tiles at cell, then propagates and resolves
// any contradiction per the wrapped propagator's backtrack policy.
func (tp *TilePropagator[T]) Ban(cell int, tiles ...T) (propagator.Status, error) {
	ts, err := tp.tileSet(tiles)
	if err != nil {
		return tp.prop.Status(), err
	}
	return tp.prop.Ban(cell, ts.Bits()), nil
}

// GetBannedSelected reports, for the given tile set at cell: banned is
// true iff none of tiles remain possible there; selected is true iff
// every remaining possible tile at cell is a member of tiles (which holds
// vacuously once the cell has collapsed to one of them, but also holds
// earlier if the other candidates have already been eliminated).
func (tp *TilePropagator[T]) GetBannedSelected(cell int, tiles []T) (banned, selected bool, err error) {
	ts, err := tp.tileSet(tiles)
	if err != nil {
		return false, false, err
	}
	possible := tp.prop.Wave().Possible[cell]

	overlap := possible.Clone()
	overlap.InPlaceIntersection(ts.Bits())
	banned = overlap.Count() == 0

	remainder := possible.Clone()
	remainder.InPlaceDifference(ts.Bits())
	selected = remainder.Count() == 0

	return banned, selected, nil
}

// ToValueArray returns one tile per cell: the decided tile if the cell
// has collapsed, or the zero value of T otherwise.
func (tp *TilePropagator[T]) ToValueArray() []T {
	n := tp.prop.Topology().CellCount()
	out := make([]T, n)
	for c := 0; c < n; c++ {
		if p, ok := tp.prop.Wave().DecidedPattern(c); ok {
			out[c] = tp.patternToTile[p]
		}
	}
	return out
}

// ToTopArray returns one tile per cell: the decided tile if collapsed,
// contradictionSentinel if the cell has zero remaining candidates, or
// undecidedSentinel otherwise.
func (tp *TilePropagator[T]) ToTopArray(undecidedSentinel, contradictionSentinel T) []T {
	n := tp.prop.Topology().CellCount()
	out := make([]T, n)
	w := tp.prop.Wave()
	for c := 0; c < n; c++ {
		switch {
		case w.Contradicted(c):
			out[c] = contradictionSentinel
		case w.Decided(c):
			p, _ := w.DecidedPattern(c)
			out[c] = tp.patternToTile[p]
		default:
			out[c] = undecidedSentinel
		}
	}
	return out
}
