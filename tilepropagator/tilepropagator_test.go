package tilepropagator

import (
	"testing"

	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChess(t *testing.T) (*pattern.Model, map[string]int, []string) {
	t.Helper()
	b := pattern.NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.AddAdjacency([]string{"black"}, []string{"white"}, topology.XPlus))
	require.NoError(t, b.AddAdjacency([]string{"black"}, []string{"white"}, topology.YPlus))
	require.NoError(t, b.AddAdjacency([]string{"white"}, []string{"black"}, topology.XPlus))
	require.NoError(t, b.AddAdjacency([]string{"white"}, []string{"black"}, topology.YPlus))
	require.NoError(t, b.SetUniformFrequency())
	model, tileToPattern, patternToTile, err := b.Build()
	require.NoError(t, err)
	return model, tileToPattern, patternToTile
}

func TestSelect_ForcesAConsistentSolve(t *testing.T) {
	model, tileToPattern, patternToTile := buildChess(t)
	topo, err := topology.New(topology.Cartesian2D(), 3, 3, 1, false, false, false, nil)
	require.NoError(t, err)
	prop, err := propagator.New(topo, model, propagator.Options{BacktrackDepth: -1, Seed: 11})
	require.NoError(t, err)
	tp := New(prop, tileToPattern, patternToTile)

	status, err := tp.Select(0, "black")
	require.NoError(t, err)
	assert.NotEqual(t, propagator.StatusContradiction, status)

	final := tp.Run(0)
	require.Equal(t, propagator.StatusDecided, final)

	values := tp.ToValueArray()
	assert.Equal(t, "black", values[0])
	for d := 0; d < topo.Directions.Count(); d++ {
		n, ok := topo.TryMove(0, topology.Direction(d))
		if !ok {
			continue
		}
		assert.Equal(t, "white", values[n])
	}
}

func TestGetBannedSelected(t *testing.T) {
	model, tileToPattern, patternToTile := buildChess(t)
	topo, err := topology.New(topology.Cartesian2D(), 2, 1, 1, false, false, false, nil)
	require.NoError(t, err)
	prop, err := propagator.New(topo, model, propagator.Options{BacktrackDepth: -1, Seed: 5})
	require.NoError(t, err)
	tp := New(prop, tileToPattern, patternToTile)

	banned, selected, err := tp.GetBannedSelected(0, []string{"black", "white"})
	require.NoError(t, err)
	assert.False(t, banned)
	assert.True(t, selected, "both tiles still possible, so possible is a subset of {black,white}")

	_, err = tp.Select(0, "black")
	require.NoError(t, err)

	banned, selected, err = tp.GetBannedSelected(0, []string{"white"})
	require.NoError(t, err)
	assert.True(t, banned, "white was eliminated by selecting black")
	assert.False(t, selected)

	banned, selected, err = tp.GetBannedSelected(0, []string{"black"})
	require.NoError(t, err)
	assert.False(t, banned)
	assert.True(t, selected, "cell has collapsed to exactly black")
}

func TestToTopArray_ReportsUndecidedAndDecided(t *testing.T) {
	model, tileToPattern, patternToTile := buildChess(t)
	topo, err := topology.New(topology.Cartesian2D(), 2, 1, 1, false, false, false, nil)
	require.NoError(t, err)
	prop, err := propagator.New(topo, model, propagator.Options{BacktrackDepth: -1, Seed: 2})
	require.NoError(t, err)
	tp := New(prop, tileToPattern, patternToTile)

	out := tp.ToTopArray("?", "!")
	assert.Equal(t, []string{"?", "?"}, out)

	_, err = tp.Select(0, "black")
	require.NoError(t, err)
	final := tp.Run(0)
	require.Equal(t, propagator.StatusDecided, final)

	out = tp.ToTopArray("?", "!")
	assert.Equal(t, "black", out[0])
	assert.Equal(t, "white", out[1])
}
