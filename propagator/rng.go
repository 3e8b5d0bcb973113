package propagator

import "math/rand"

// rngFromSeed returns a deterministic *rand.Rand for a uint64 seed.
// Adapted from the teacher's tsp.rngFromSeed: that helper treated seed==0
// as "use a fixed default" so TSP restarts stayed reproducible; here a
// WFC run's seed is a required propagator option, so 0 is simply a valid
// seed like any other — there is no hidden default to substitute.
//
// Complexity: O(1).
func rngFromSeed(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

// weightedChoice picks one pattern index from patterns, weighted by
// weight(p), using rng. It is the observation-time analogue of the
// teacher's tsp.shuffleIntsInPlace: a single deterministic draw from rng
// rather than a full permutation, since Observe only ever needs one
// sample per call.
//
// Precondition: sum of weight(p) over patterns must be > 0.
func weightedChoice(rng *rand.Rand, patterns []int, weight func(p int) float64) int {
	var total float64
	for _, p := range patterns {
		total += weight(p)
	}
	target := rng.Float64() * total
	var acc float64
	for _, p := range patterns {
		acc += weight(p)
		if target < acc {
			return p
		}
	}
	// Floating-point rounding can leave target >= acc by an epsilon;
	// fall back to the last candidate rather than panic.
	return patterns[len(patterns)-1]
}
