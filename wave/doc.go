// Package wave holds the mutable boolean possibility matrix the
// propagator operates on: possible[cell][pattern], packed as one
// *bitset.BitSet per cell (github.com/bits-and-blooms/bitset), plus the
// cached per-cell entropy aggregates (sumFrequency, sumFrequencyLog,
// patternCount) that give O(1) Shannon-entropy comparison during
// observation.
package wave
