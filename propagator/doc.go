// Package propagator implements the AC-3-style constraint propagation
// engine and the observation/backtracking loop that drives it: WavePropagator
// owns a wave.Wave, a FIFO elimination queue, a backtrack stack, and a
// seeded random source, per §4.2 of the design spec.
//
// Determinism (§5 of the design spec): propagation never iterates an
// associative container in the hot loop, and the random source is only
// consulted once at construction (per-cell entropy tie-break noise) and
// then at each Step's weighted collapse. Re-running with the same seed, model, topology
// and constraints reproduces a bit-identical solution.
package propagator
