package pattern

// Model is the flat, immutable result of Builder.Build. Patterns
// are dense integers in [0, NumPatterns). Frequencies[p] == 0 means p is
// forbidden everywhere (it may still occupy a slot if some other tile
// referenced it before being zeroed out via SetFrequency).
//
// Symmetry invariant (enforced by the builder, assumed by the
// propagator): q is in Propagator[p][d] iff p is in Propagator[q][inv(d)].
type Model struct {
	Frequencies []float64
	// Propagator[p][d] is the sorted list of patterns allowed at the
	// neighbor reached by direction d from a cell holding pattern p.
	Propagator [][][]int
	directions int
}

// NumPatterns returns the number of distinct patterns in the model.
func (m *Model) NumPatterns() int {
	return len(m.Frequencies)
}

// NumDirections returns D, the direction-set cardinality this model was
// compiled against.
func (m *Model) NumDirections() int {
	return m.directions
}
