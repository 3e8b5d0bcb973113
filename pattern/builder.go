package pattern

import (
	"errors"
	"sort"

	"github.com/katalvlaran/wfc/topology"
	"github.com/katalvlaran/wfc/wfcerr"
)

// Sentinel errors for AdjacencyBuilder misuse. All are programmer errors:
// the builder is only ever mutated before Build, by a single owner.
var (
	ErrAlreadyBuilt        = errors.New("pattern: builder already built; it is read-only from here on")
	ErrDirectionOutOfRange = errors.New("pattern: direction index out of range for this builder's DirectionSet")
	ErrNegativeFrequency   = errors.New("pattern: frequency must be >= 0")
)

// Builder accumulates tile-level adjacency declarations and/or sample
// arrays and compiles them into a Model. Tile → pattern assignment is
// lazy: the first occurrence of a tile appends a new pattern index, grows
// Frequencies with 0, and grows the per-direction compatibility sets with
// empty maps. T must be comparable so it can key a Go map directly — no
// hash-wrapper indirection is needed, unlike the source's opaque tile
// wrapper (see DESIGN.md "Tile identity").
type Builder[T comparable] struct {
	directions topology.DirectionSet

	tileToPattern map[T]int
	patternToTile []T
	frequencies   []float64
	// compat[p][d] is a build-time set of patterns compatible with p in
	// direction d. Converted to sorted slices by Build.
	compat [][]map[int]struct{}

	built bool
}

// NewBuilder returns an empty Builder bound to ds. ds is fixed for the
// life of the builder; there is no setter, so the "incompatible direction
// set" failure mode from the design spec cannot arise by construction.
func NewBuilder[T comparable](ds topology.DirectionSet) *Builder[T] {
	return &Builder[T]{
		directions:    ds,
		tileToPattern: make(map[T]int),
	}
}

// patternFor returns tile's pattern index, assigning a fresh one (and
// growing every parallel slice) on first occurrence.
func (b *Builder[T]) patternFor(tile T) int {
	if p, ok := b.tileToPattern[tile]; ok {
		return p
	}
	p := len(b.patternToTile)
	b.tileToPattern[tile] = p
	b.patternToTile = append(b.patternToTile, tile)
	b.frequencies = append(b.frequencies, 0)
	row := make([]map[int]struct{}, b.directions.Count())
	for d := range row {
		row[d] = make(map[int]struct{})
	}
	b.compat = append(b.compat, row)
	return p
}

// AddAdjacency declares that every tile in dest may sit at the neighbor
// reached by direction d from every tile in src. It adds both the forward
// pair (s -> d, direction d) and the symmetric inverse pair
// (d -> s, direction inv(d)), maintaining the Model's symmetry invariant.
func (b *Builder[T]) AddAdjacency(src, dest []T, d topology.Direction) error {
	if b.built {
		return wfcerr.Programmer(ErrAlreadyBuilt)
	}
	if !b.directions.Valid(d) {
		return wfcerr.Programmer(ErrDirectionOutOfRange)
	}
	inv := b.directions.Inverse(d)
	for _, s := range src {
		sp := b.patternFor(s)
		for _, t := range dest {
			tp := b.patternFor(t)
			b.compat[sp][d][tp] = struct{}{}
			b.compat[tp][inv][sp] = struct{}{}
		}
	}
	return nil
}

// SetFrequency sets tile's absolute weight. A weight of 0 forbids the
// tile everywhere it would otherwise be legal.
func (b *Builder[T]) SetFrequency(tile T, f float64) error {
	if b.built {
		return wfcerr.Programmer(ErrAlreadyBuilt)
	}
	if f < 0 {
		return wfcerr.Programmer(ErrNegativeFrequency)
	}
	p := b.patternFor(tile)
	b.frequencies[p] = f
	return nil
}

// MultiplyFrequency scales tile's current weight by m.
func (b *Builder[T]) MultiplyFrequency(tile T, m float64) error {
	if b.built {
		return wfcerr.Programmer(ErrAlreadyBuilt)
	}
	p := b.patternFor(tile)
	b.frequencies[p] *= m
	if b.frequencies[p] < 0 {
		return wfcerr.Programmer(ErrNegativeFrequency)
	}
	return nil
}

// SetUniformFrequency assigns weight 1 to every tile registered so far.
// Tiles added afterwards default to 0 as usual until set explicitly.
func (b *Builder[T]) SetUniformFrequency() error {
	if b.built {
		return wfcerr.Programmer(ErrAlreadyBuilt)
	}
	for p := range b.frequencies {
		b.frequencies[p] = 1
	}
	return nil
}

// Sample is a dense 3D array of tiles (indexed [z][y][x]) used by
// AddSample to learn frequencies and adjacencies by observation, the way
// the overlapping-pattern variant would learn from an input image — here
// applied directly at tile granularity.
type Sample[T comparable] struct {
	Width, Height, Depth int
	Cell                 func(x, y, z int) T
}

// AddSample scans sample once: for every cell it increments the observed
// tile's frequency by one, and for every valid neighbor (non-periodic,
// unmasked, in-bounds — a sample has no wraparound) it records the
// observed pair as compatible in both directions.
func (b *Builder[T]) AddSample(sample Sample[T]) error {
	if b.built {
		return wfcerr.Programmer(ErrAlreadyBuilt)
	}
	sampleTopo, err := topology.New(b.directions, sample.Width, sample.Height, sample.Depth, false, false, false, nil)
	if err != nil {
		return err
	}
	tileAt := func(idx int) T {
		x, y, z := sampleTopo.Coordinate(idx)
		return sample.Cell(x, y, z)
	}
	for idx := 0; idx < sampleTopo.CellCount(); idx++ {
		tile := tileAt(idx)
		p := b.patternFor(tile)
		b.frequencies[p]++
		for d := topology.Direction(0); d < topology.Direction(b.directions.Count()); d++ {
			n, ok := sampleTopo.TryMove(idx, d)
			if !ok {
				continue
			}
			neighborTile := tileAt(n)
			np := b.patternFor(neighborTile)
			inv := b.directions.Inverse(d)
			b.compat[p][d][np] = struct{}{}
			b.compat[np][inv][p] = struct{}{}
		}
	}
	return nil
}

// Build materializes the accumulated declarations into a read-only Model
// plus the pattern<->tile maps, and marks the builder finalized: further
// mutation returns ErrAlreadyBuilt.
func (b *Builder[T]) Build() (*Model, map[T]int, []T, error) {
	if b.built {
		return nil, nil, nil, wfcerr.Programmer(ErrAlreadyBuilt)
	}
	b.built = true

	n := len(b.patternToTile)
	propagator := make([][][]int, n)
	for p := 0; p < n; p++ {
		propagator[p] = make([][]int, b.directions.Count())
		for d := 0; d < b.directions.Count(); d++ {
			set := b.compat[p][d]
			list := make([]int, 0, len(set))
			for q := range set {
				list = append(list, q)
			}
			sort.Ints(list)
			propagator[p][d] = list
		}
	}

	model := &Model{
		Frequencies: append([]float64(nil), b.frequencies...),
		Propagator:  propagator,
		directions:  b.directions.Count(),
	}

	tileToPattern := make(map[T]int, len(b.tileToPattern))
	for t, p := range b.tileToPattern {
		tileToPattern[t] = p
	}
	patternToTile := append([]T(nil), b.patternToTile...)

	return model, tileToPattern, patternToTile, nil
}

// NumPatterns reports how many distinct tiles have been registered so far
// (via AddAdjacency, the frequency setters, or AddSample).
func (b *Builder[T]) NumPatterns() int {
	return len(b.patternToTile)
}
