package pattern

import (
	"testing"

	"github.com/katalvlaran/wfc/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_LazyPatternAssignment(t *testing.T) {
	b := NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.AddAdjacency([]string{"grass"}, []string{"forest"}, topology.XPlus))
	assert.Equal(t, 2, b.NumPatterns())

	model, tileToPattern, patternToTile, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, model.NumPatterns())
	assert.Len(t, patternToTile, 2)
	assert.Contains(t, tileToPattern, "grass")
	assert.Contains(t, tileToPattern, "forest")
}

func TestBuilder_SymmetryInvariant(t *testing.T) {
	b := NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.AddAdjacency([]string{"a"}, []string{"b", "c"}, topology.XPlus))
	model, tileToPattern, _, err := b.Build()
	require.NoError(t, err)

	ds := topology.Cartesian2D()
	for p := 0; p < model.NumPatterns(); p++ {
		for d := topology.Direction(0); d < topology.Direction(ds.Count()); d++ {
			for _, q := range model.Propagator[p][d] {
				found := false
				for _, back := range model.Propagator[q][ds.Inverse(d)] {
					if back == p {
						found = true
						break
					}
				}
				assert.True(t, found, "symmetry violated for p=%d d=%d q=%d", p, d, q)
			}
		}
	}
	_ = tileToPattern
}

func TestBuilder_ErrorsAfterBuild(t *testing.T) {
	b := NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.SetFrequency("a", 1))
	_, _, _, err := b.Build()
	require.NoError(t, err)

	err = b.SetFrequency("a", 2)
	assert.ErrorIs(t, err, ErrAlreadyBuilt)

	_, _, _, err = b.Build()
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestBuilder_RejectsBadDirection(t *testing.T) {
	b := NewBuilder[string](topology.Cartesian2D())
	err := b.AddAdjacency([]string{"a"}, []string{"b"}, topology.ZPlus)
	assert.ErrorIs(t, err, ErrDirectionOutOfRange)
}

func TestBuilder_AddSample(t *testing.T) {
	// 2x1 sample: "a" at (0,0), "b" at (1,0) -> a compatible with b via XPlus.
	b := NewBuilder[string](topology.Cartesian2D())
	grid := [][]string{{"a", "b"}}
	err := b.AddSample(Sample[string]{
		Width: 2, Height: 1, Depth: 1,
		Cell: func(x, y, z int) string { return grid[y][x] },
	})
	require.NoError(t, err)

	model, tileToPattern, _, err := b.Build()
	require.NoError(t, err)
	ap, bp := tileToPattern["a"], tileToPattern["b"]
	assert.Contains(t, model.Propagator[ap][topology.XPlus], bp)
	assert.Contains(t, model.Propagator[bp][topology.XMinus], ap)
	assert.Equal(t, float64(1), model.Frequencies[ap])
	assert.Equal(t, float64(1), model.Frequencies[bp])
}

func TestNewTileSet(t *testing.T) {
	b := NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.SetFrequency("a", 1))
	require.NoError(t, b.SetFrequency("b", 1))
	_, tileToPattern, _, err := b.Build()
	require.NoError(t, err)

	ts, err := NewTileSet(tileToPattern, []string{"a"})
	require.NoError(t, err)
	assert.True(t, ts.Contains(tileToPattern["a"]))
	assert.False(t, ts.Contains(tileToPattern["b"]))

	_, err = NewTileSet(tileToPattern, []string{"unknown"})
	assert.ErrorIs(t, err, ErrUnknownTile)
}
