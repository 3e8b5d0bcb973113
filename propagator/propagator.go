package propagator

import (
	"errors"
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/topology"
	"github.com/katalvlaran/wfc/wave"
	"github.com/katalvlaran/wfc/wfcerr"
)

// Status is the tri-state result of a propagation/observation step and of
// a Constraint callback.
type Status int

const (
	StatusUndecided Status = iota
	StatusDecided
	StatusContradiction
)

func (s Status) String() string {
	switch s {
	case StatusUndecided:
		return "undecided"
	case StatusDecided:
		return "decided"
	case StatusContradiction:
		return "contradiction"
	default:
		return "unknown"
	}
}

// Constraint is the plug-in protocol: Init runs once before the first
// observation, Check runs after every propagation fixed-point. Both may
// call EnqueueSelect/EnqueueBan (not Select/Ban) on the WavePropagator
// they are given;
// mutating a *different* propagator, or mutating the one they're given
// from a goroutine other than its owner, is a programmer error the spec
// does not ask the implementation to detect.
type Constraint interface {
	Init(p *WavePropagator) Status
	Check(p *WavePropagator) Status
}

// Logger receives structured telemetry events (backtrack, step,
// contradiction). A nil Logger is a valid no-op; see wfclog.Logger for a
// zerolog-backed implementation.
type Logger interface {
	Event(name string, fields map[string]interface{})
}

// MetricsRecorder receives counters for external telemetry (e.g.
// Prometheus). A nil MetricsRecorder is a valid no-op; see
// metrics.Recorder for a prometheus/client_golang-backed implementation.
type MetricsRecorder interface {
	IncBacktrack()
	IncStep()
	IncContradiction()
	SetUndecidedCells(n int)
}

// Options configures a WavePropagator at construction.
type Options struct {
	// BacktrackDepth bounds how many nested observations a single
	// contradiction may unwind before giving up and reporting a terminal
	// Contradiction: -1 means unbounded, 0 disables backtracking (any
	// contradiction is immediately terminal).
	BacktrackDepth int
	Constraints     []Constraint
	Seed            uint64
	Logger          Logger
	Metrics         MetricsRecorder
}

var (
	// ErrDirectionMismatch is a programmer error: the model was compiled
	// against a different DirectionSet cardinality than the topology uses.
	ErrDirectionMismatch = errors.New("propagator: model direction count does not match topology direction count")
)

type change struct {
	cell, pattern int
}

// decrement records one actual compat[cell][pattern][direction]-- applied
// while a frame was active, so backtracking can replay exactly the
// decrements that happened rather than every decrement that was merely
// attempted (propagateQueue skips decrementing a counter already at zero).
type decrement struct {
	cell, pattern, direction int
}

type frame struct {
	cell, pattern int
	changes       []change
	decrements    []decrement
}

// WavePropagator is the AC-3-style propagation engine plus the
// observation/backtracking loop described in §4.2 of the design spec. It
// owns one wave.Wave and is not safe for concurrent use; see §5.
type WavePropagator struct {
	topo  *topology.Topology
	model *pattern.Model
	wv    *wave.Wave

	queue []change
	// compat[cell][pattern][direction] mirrors the spec's compatibleCount:
	// the number of patterns still possible at the relevant neighbor that
	// keep `pattern` supported at `cell` via `direction`. See propagate.go
	// for the derivation of exactly which neighbor/direction that is.
	compat [][][]int

	backtrackDepth int
	stack          []*frame

	rng         *rand.Rand
	constraints []Constraint

	status          Status
	backtrackCount  int
	stepCount       int
	changeCounter   uint64
	contradictedCell int

	logger  Logger
	metrics MetricsRecorder
}

// New constructs a WavePropagator over topo and model, applying opts.
// Returns a wfcerr.KindProgrammer error if model was not compiled against
// a DirectionSet of the same cardinality as topo.Directions.
func New(topo *topology.Topology, model *pattern.Model, opts Options) (*WavePropagator, error) {
	if model.NumDirections() != topo.Directions.Count() {
		return nil, wfcerr.Programmer(ErrDirectionMismatch)
	}

	p := &WavePropagator{
		topo:             topo,
		model:            model,
		backtrackDepth:   opts.BacktrackDepth,
		constraints:      opts.Constraints,
		rng:              rngFromSeed(opts.Seed),
		logger:           opts.Logger,
		metrics:          opts.Metrics,
		contradictedCell: -1,
	}
	p.wv = wave.New(topo, model, p.rng)
	p.initCompat()
	if p.initialEliminate() == StatusContradiction {
		p.status = StatusContradiction
		return p, nil
	}

	for _, c := range p.constraints {
		if c.Init(p) == StatusContradiction {
			p.status = StatusContradiction
			return p, nil
		}
	}
	return p, nil
}

// initialEliminate bans, before the first observation, every pattern that
// has zero support in some direction with an existing neighbor — a
// pattern with no declared compatible neighbor there can never survive
// propagation, but nothing would otherwise trigger the check until some
// unrelated event revisits that (cell, pattern, direction) triple.
func (p *WavePropagator) initialEliminate() Status {
	numDirections := p.topo.Directions.Count()
	for c := 0; c < p.topo.CellCount(); c++ {
		if p.topo.Masked(c) {
			continue
		}
		for pat := 0; pat < p.model.NumPatterns(); pat++ {
			if !p.wv.IsPossible(c, pat) {
				continue
			}
			for d := 0; d < numDirections; d++ {
				if _, ok := p.topo.TryMove(c, topology.Direction(d)); !ok {
					continue
				}
				if p.compat[c][pat][d] == 0 {
					p.eliminate(c, pat)
					break
				}
			}
		}
	}
	return p.propagateQueue()
}

// initCompat fills compat[cell][pattern][direction] with the cardinality
// of model.Propagator[pattern][direction] restricted to patterns with
// nonzero frequency, matching wave.New's initial possibility set.
func (p *WavePropagator) initCompat() {
	numPatterns := p.model.NumPatterns()
	numDirections := p.model.NumDirections()

	base := make([][]int, numPatterns)
	for pat := 0; pat < numPatterns; pat++ {
		base[pat] = make([]int, numDirections)
		for d := 0; d < numDirections; d++ {
			count := 0
			for _, q := range p.model.Propagator[pat][d] {
				if p.model.Frequencies[q] > 0 {
					count++
				}
			}
			base[pat][d] = count
		}
	}

	n := p.topo.CellCount()
	p.compat = make([][][]int, n)
	for c := 0; c < n; c++ {
		rows := make([][]int, numPatterns)
		for pat := 0; pat < numPatterns; pat++ {
			row := make([]int, numDirections)
			copy(row, base[pat])
			rows[pat] = row
		}
		p.compat[c] = rows
	}
}

// Wave exposes the underlying possibility matrix for constraints and the
// tile-level façade.
func (p *WavePropagator) Wave() *wave.Wave { return p.wv }

// Topology returns the topology this propagator was constructed over.
func (p *WavePropagator) Topology() *topology.Topology { return p.topo }

// Model returns the pattern model this propagator was constructed over.
func (p *WavePropagator) Model() *pattern.Model { return p.model }

// Status returns the current terminal/intermediate state.
func (p *WavePropagator) Status() Status { return p.status }

// BacktrackCount returns how many backtracks have occurred so far.
func (p *WavePropagator) BacktrackCount() int { return p.backtrackCount }

// StepCount returns how many observations have been performed so far.
func (p *WavePropagator) StepCount() int { return p.stepCount }

// Select eliminates every pattern at cell not present in keep, then runs
// propagation and the constraint protocol to a fixed point, backtracking
// on contradiction per Options.BacktrackDepth. A no-op returning the
// current status if the propagator is already terminal. For use by
// top-level callers (e.g. the tile-level façade) between observations;
// a Constraint's Init/Check must use EnqueueSelect instead — see there.
func (p *WavePropagator) Select(cell int, keep *bitset.BitSet) Status {
	if p.status != StatusUndecided {
		return p.status
	}
	p.EnqueueSelect(cell, keep)
	return p.resolve(p.drainAndCheck())
}

// Ban eliminates every pattern at cell present in remove, then runs
// propagation and the constraint protocol to a fixed point. See Select.
func (p *WavePropagator) Ban(cell int, remove *bitset.BitSet) Status {
	if p.status != StatusUndecided {
		return p.status
	}
	p.EnqueueBan(cell, remove)
	return p.resolve(p.drainAndCheck())
}

// EnqueueSelect eliminates every pattern at cell not present in keep
// without draining the propagation queue or re-running constraints. This
// is the primitive a Constraint's Init/Check must use: drainAndCheck is
// already looping over every constraint when Check runs, so draining here
// too would re-enter that same loop reentrantly. The enclosing
// drainAndCheck round propagates these eliminations once every
// constraint's Check has run.
func (p *WavePropagator) EnqueueSelect(cell int, keep *bitset.BitSet) {
	for pat := 0; pat < p.model.NumPatterns(); pat++ {
		if p.wv.IsPossible(cell, pat) && !keep.Test(uint(pat)) {
			p.eliminate(cell, pat)
		}
	}
}

// EnqueueBan eliminates every pattern at cell present in remove without
// draining. See EnqueueSelect.
func (p *WavePropagator) EnqueueBan(cell int, remove *bitset.BitSet) {
	for pat := 0; pat < p.model.NumPatterns(); pat++ {
		if p.wv.IsPossible(cell, pat) && remove.Test(uint(pat)) {
			p.eliminate(cell, pat)
		}
	}
}

// eliminate clears pattern at cell (if not already gone), records the
// change on the active backtrack frame (if any), enqueues it for
// propagation, and flags a contradiction if the cell just ran dry.
func (p *WavePropagator) eliminate(cell, pattern int) {
	if !p.wv.Eliminate(cell, pattern) {
		return
	}
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.changes = append(top.changes, change{cell, pattern})
	}
	p.changeCounter++
	if p.wv.Contradicted(cell) {
		p.contradictedCell = cell
	}
	p.queue = append(p.queue, change{cell, pattern})
}

// recordDecrement notes, on the active backtrack frame (if any), that
// compat[cell][pattern][direction] was just decremented by propagateQueue.
func (p *WavePropagator) recordDecrement(cell, pattern, direction int) {
	if len(p.stack) == 0 {
		return
	}
	top := p.stack[len(p.stack)-1]
	top.decrements = append(top.decrements, decrement{cell, pattern, direction})
}

// resolve turns a post-propagation status into the propagator's new
// sticky status, attempting a backtrack on contradiction when enabled.
func (p *WavePropagator) resolve(status Status) Status {
	if status == StatusContradiction {
		if p.backtrackDepth != 0 {
			status = p.backtrack()
		}
	}
	if status == StatusContradiction {
		p.status = StatusContradiction
		if p.metrics != nil {
			p.metrics.IncContradiction()
		}
		return p.status
	}
	if p.allDecided() {
		p.status = StatusDecided
	} else {
		p.status = StatusUndecided
	}
	if p.metrics != nil {
		p.metrics.SetUndecidedCells(p.countUndecided())
	}
	return p.status
}

func (p *WavePropagator) allDecided() bool {
	for c := 0; c < p.topo.CellCount(); c++ {
		if p.topo.Masked(c) {
			continue
		}
		if !p.wv.Decided(c) {
			return false
		}
	}
	return true
}

func (p *WavePropagator) countUndecided() int {
	n := 0
	for c := 0; c < p.topo.CellCount(); c++ {
		if p.topo.Masked(c) {
			continue
		}
		if !p.wv.Decided(c) {
			n++
		}
	}
	return n
}

// Clear resets the wave and propagator bookkeeping to a freshly
// constructed state (same topology, model, constraints and RNG stream)
// and re-runs every constraint's Init. Terminal Status values are sticky
// until Clear is called.
func (p *WavePropagator) Clear() {
	p.wv.Clear()
	p.initCompat()
	p.queue = nil
	p.stack = nil
	p.status = StatusUndecided
	p.backtrackCount = 0
	p.stepCount = 0
	p.changeCounter = 0
	p.contradictedCell = -1
	if p.initialEliminate() == StatusContradiction {
		p.status = StatusContradiction
		return
	}
	for _, c := range p.constraints {
		if c.Init(p) == StatusContradiction {
			p.status = StatusContradiction
			return
		}
	}
}

// Step performs exactly one observation (lowest-entropy cell selection,
// weighted collapse, propagation, constraint pass, backtrack-if-needed)
// and returns the resulting status. It is a no-op returning the current
// status if the propagator is already terminal.
func (p *WavePropagator) Step() Status {
	if p.status != StatusUndecided {
		return p.status
	}

	cell, ok := p.selectLowestEntropyCell()
	if !ok {
		p.status = StatusDecided
		return p.status
	}

	var candidates []int
	for pat := 0; pat < p.model.NumPatterns(); pat++ {
		if p.wv.IsPossible(cell, pat) {
			candidates = append(candidates, pat)
		}
	}
	chosen := weightedChoice(p.rng, candidates, func(pat int) float64 {
		return p.model.Frequencies[pat]
	})

	p.stack = append(p.stack, &frame{cell: cell, pattern: chosen})
	for _, pat := range candidates {
		if pat != chosen {
			p.eliminate(cell, pat)
		}
	}

	p.stepCount++
	if p.metrics != nil {
		p.metrics.IncStep()
	}
	if p.logger != nil {
		p.logger.Event("observe", map[string]interface{}{"cell": cell, "pattern": chosen})
	}

	return p.resolve(p.drainAndCheck())
}

// Run calls Step until the propagator reaches a terminal status or
// maxSteps observations have been performed (maxSteps <= 0 means
// unlimited). Reaching maxSteps without a terminal status returns
// StatusUndecided without marking it sticky — the caller may call Run or
// Step again to continue.
func (p *WavePropagator) Run(maxSteps int) Status {
	steps := 0
	for p.status == StatusUndecided {
		if maxSteps > 0 && steps >= maxSteps {
			return p.status
		}
		p.Step()
		steps++
	}
	return p.status
}

func (p *WavePropagator) selectLowestEntropyCell() (int, bool) {
	best := -1
	bestEntropy := math.Inf(1)
	for c := 0; c < p.topo.CellCount(); c++ {
		if p.topo.Masked(c) || p.wv.Decided(c) {
			continue
		}
		e := p.wv.Entropy(c)
		if e < bestEntropy {
			bestEntropy = e
			best = c
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
