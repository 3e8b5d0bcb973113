// Package pattern holds the flat, build-once representation of tile
// compatibility: Model stores per-pattern frequencies and, for each
// (pattern, direction) pair, the sorted list of patterns allowed at the
// neighboring cell. Builder is the mutable, pre-construction side:
// it accumulates tile-level adjacency declarations and/or sample arrays
// (the teacher's builder.BuilderOption / Constructor split between
// "insertion-cheap while building" and "contiguous arrays for the hot
// loop" is mirrored here — compatibility sets are Go maps during Add*
// calls and sorted []int slices after Build).
package pattern
