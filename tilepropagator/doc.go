// Package tilepropagator is the tile-typed façade over propagator: it
// keeps the tile<->pattern maps a pattern.Builder produced and translates
// caller-facing tile lists into the pattern-index bitsets WavePropagator
// operates on, per §4.3 and §6 of the design spec.
package tilepropagator
