package pattern

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/wfc/wfcerr"
)

// ErrUnknownTile is returned by NewTileSet when a tile was never
// registered with the builder that produced tileToPattern.
var ErrUnknownTile = errors.New("pattern: tile set references a tile not registered with the builder")

// TileSet is a precomputed bitmap over pattern indices, derived from a
// tile list, against which constraints compare wave possibilities. It is
// immutable after construction.
type TileSet struct {
	bits *bitset.BitSet
	n    uint
}

// NewTileSet builds a TileSet from tiles, resolving each through
// tileToPattern (as produced by Builder.Build).
func NewTileSet[T comparable](tileToPattern map[T]int, tiles []T) (*TileSet, error) {
	bits := bitset.New(uint(len(tileToPattern)))
	for _, t := range tiles {
		p, ok := tileToPattern[t]
		if !ok {
			return nil, wfcerr.Programmer(ErrUnknownTile)
		}
		bits.Set(uint(p))
	}
	return &TileSet{bits: bits, n: uint(len(tileToPattern))}, nil
}

// NewTileSetFromPatterns builds a TileSet directly from pattern indices,
// used internally by constraints that already operate at pattern
// granularity (e.g. "every pattern whose exit set contains direction d").
func NewTileSetFromPatterns(numPatterns int, patterns []int) *TileSet {
	bits := bitset.New(uint(numPatterns))
	for _, p := range patterns {
		bits.Set(uint(p))
	}
	return &TileSet{bits: bits, n: uint(numPatterns)}
}

// Contains reports whether pattern p is a member of the set.
func (ts *TileSet) Contains(p int) bool {
	return ts.bits.Test(uint(p))
}

// Bits exposes the underlying bitset for package-internal set algebra
// (intersection/union tests in the propagator and constraints).
func (ts *TileSet) Bits() *bitset.BitSet {
	return ts.bits
}
