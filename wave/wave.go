package wave

import (
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/topology"
)

// Wave is the mutable state of propagation over one Topology/Model pair.
// It is created once by New and reset in place by Clear; it is mutated
// only by the owning propagator.
type Wave struct {
	Topology *topology.Topology
	Model    *pattern.Model

	// Possible[cell] has bit p set iff pattern p is still a candidate at
	// cell. One *bitset.BitSet per cell, per the design spec's "pack
	// possible as bitwords" guidance.
	Possible []*bitset.BitSet

	sumFrequency    []float64
	sumFrequencyLog []float64
	patternCount    []int

	// noise is a small, fixed, per-cell perturbation generated once at
	// creation from the seeded RNG, used to break entropy ties
	// deterministically and reproducibly.
	noise []float64
}

// New builds a Wave with every cell fully possible: every pattern with
// nonzero frequency is a candidate everywhere (masked cells are seeded
// identically but the propagator/constraints never select or report
// them as decided). rng seeds the per-cell tie-break noise only; it is
// not retained.
func New(topo *topology.Topology, model *pattern.Model, rng *rand.Rand) *Wave {
	w := &Wave{Topology: topo, Model: model}
	n := topo.CellCount()
	w.Possible = make([]*bitset.BitSet, n)
	w.sumFrequency = make([]float64, n)
	w.sumFrequencyLog = make([]float64, n)
	w.patternCount = make([]int, n)
	w.noise = make([]float64, n)
	for c := 0; c < n; c++ {
		w.noise[c] = rng.Float64() * 1e-6
	}
	w.resetAggregates()
	return w
}

// Clear resets every cell to fully possible, as if the Wave had just been
// constructed, without touching the previously generated tie-break noise.
func (w *Wave) Clear() {
	w.resetAggregates()
}

func (w *Wave) resetAggregates() {
	numPatterns := uint(w.Model.NumPatterns())
	for c := range w.Possible {
		bs := bitset.New(numPatterns)
		var sumF, sumFLog float64
		count := 0
		for p := 0; p < w.Model.NumPatterns(); p++ {
			f := w.Model.Frequencies[p]
			if f <= 0 {
				continue
			}
			bs.Set(uint(p))
			sumF += f
			sumFLog += f * math.Log(f)
			count++
		}
		w.Possible[c] = bs
		w.sumFrequency[c] = sumF
		w.sumFrequencyLog[c] = sumFLog
		w.patternCount[c] = count
	}
}

// IsPossible reports whether pattern p remains a candidate at cell.
func (w *Wave) IsPossible(cell, p int) bool {
	return w.Possible[cell].Test(uint(p))
}

// PatternCount returns the number of remaining candidates at cell.
func (w *Wave) PatternCount(cell int) int {
	return w.patternCount[cell]
}

// Decided reports whether cell has collapsed to exactly one pattern.
func (w *Wave) Decided(cell int) bool {
	return w.patternCount[cell] == 1
}

// Contradicted reports whether cell has zero remaining candidates.
func (w *Wave) Contradicted(cell int) bool {
	return w.patternCount[cell] == 0
}

// DecidedPattern returns the single remaining pattern at cell and true,
// or (0, false) if the cell is not yet decided.
func (w *Wave) DecidedPattern(cell int) (int, bool) {
	if w.patternCount[cell] != 1 {
		return 0, false
	}
	p, ok := w.Possible[cell].NextSet(0)
	return int(p), ok
}

// Entropy returns the Shannon entropy of cell's remaining distribution,
// log(sumFrequency) - sumFrequencyLog/sumFrequency, plus the cell's fixed
// tie-break noise. Only meaningful for undecided cells.
func (w *Wave) Entropy(cell int) float64 {
	sumF := w.sumFrequency[cell]
	if sumF <= 0 {
		return math.Inf(-1)
	}
	return math.Log(sumF) - w.sumFrequencyLog[cell]/sumF + w.noise[cell]
}

// Eliminate clears pattern p at cell and updates the cached aggregates.
// It is a no-op if p was already impossible there. Returns true if a bit
// actually changed (callers use this to know whether to continue
// propagating from this elimination).
func (w *Wave) Eliminate(cell, p int) bool {
	if !w.Possible[cell].Test(uint(p)) {
		return false
	}
	w.Possible[cell].Clear(uint(p))
	f := w.Model.Frequencies[p]
	w.sumFrequency[cell] -= f
	w.sumFrequencyLog[cell] -= f * math.Log(f)
	w.patternCount[cell]--
	return true
}

// Restore re-sets pattern p at cell, reversing Eliminate. Used only by
// backtracking, which replays eliminations in reverse order.
func (w *Wave) Restore(cell, p int) {
	w.Possible[cell].Set(uint(p))
	f := w.Model.Frequencies[p]
	w.sumFrequency[cell] += f
	w.sumFrequencyLog[cell] += f * math.Log(f)
	w.patternCount[cell]++
}
