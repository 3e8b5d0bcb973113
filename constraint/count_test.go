package constraint_test

import (
	"testing"

	"github.com/katalvlaran/wfc/constraint"
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCountModel(t *testing.T) (*pattern.Model, map[string]int) {
	t.Helper()
	b := pattern.NewBuilder[string](topology.Cartesian2D())
	all := []string{"a", "b"}
	require.NoError(t, b.AddAdjacency(all, all, topology.XPlus))
	require.NoError(t, b.SetUniformFrequency())
	model, tileToPattern, _, err := b.Build()
	require.NoError(t, err)
	return model, tileToPattern
}

func TestCountConstraint_AtMostBansRemainingOnceReached(t *testing.T) {
	model, tileToPattern := buildCountModel(t)
	topo, err := topology.New(topology.Cartesian2D(), 3, 1, 1, false, false, false, nil)
	require.NoError(t, err)

	aTiles, err := pattern.NewTileSet(tileToPattern, []string{"a"})
	require.NoError(t, err)
	cc := constraint.NewCountConstraint(aTiles, 1, constraint.AtMost, false)

	p, err := propagator.New(topo, model, propagator.Options{Constraints: []propagator.Constraint{cc}})
	require.NoError(t, err)

	status := p.Select(0, aTiles.Bits())
	require.Equal(t, propagator.StatusDecided, status)

	bPat := tileToPattern["b"]
	for _, cell := range []int{1, 2} {
		got, ok := p.Wave().DecidedPattern(cell)
		require.True(t, ok)
		assert.Equal(t, bPat, got, "cell %d should have been banned down to b once the count-1 cap was reached", cell)
	}
}

func TestCountConstraint_AtMostContradictsWhenExceeded(t *testing.T) {
	model, tileToPattern := buildCountModel(t)
	topo, err := topology.New(topology.Cartesian2D(), 3, 1, 1, false, false, false, nil)
	require.NoError(t, err)

	aTiles, err := pattern.NewTileSet(tileToPattern, []string{"a"})
	require.NoError(t, err)
	cc := constraint.NewCountConstraint(aTiles, 0, constraint.AtMost, false)

	p, err := propagator.New(topo, model, propagator.Options{BacktrackDepth: 0, Constraints: []propagator.Constraint{cc}})
	require.NoError(t, err)

	status := p.Select(0, aTiles.Bits())
	assert.Equal(t, propagator.StatusContradiction, status)
}

// With exactly as many cells as K, AtLeast's tightness check fires inside
// Init's own Check call, forcing every cell to the counted tile set before
// a single observation is made.
func TestCountConstraint_AtLeastSelectsEveryCellWhenTight(t *testing.T) {
	model, tileToPattern := buildCountModel(t)
	topo, err := topology.New(topology.Cartesian2D(), 3, 1, 1, false, false, false, nil)
	require.NoError(t, err)

	aTiles, err := pattern.NewTileSet(tileToPattern, []string{"a"})
	require.NoError(t, err)
	cc := constraint.NewCountConstraint(aTiles, 3, constraint.AtLeast, false)

	p, err := propagator.New(topo, model, propagator.Options{Constraints: []propagator.Constraint{cc}})
	require.NoError(t, err)

	status := p.Run(0)
	require.Equal(t, propagator.StatusDecided, status)

	want := tileToPattern["a"]
	for c := 0; c < topo.CellCount(); c++ {
		got, ok := p.Wave().DecidedPattern(c)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
