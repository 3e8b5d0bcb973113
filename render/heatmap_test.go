package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/render"
	"github.com/katalvlaran/wfc/tilepropagator"
	"github.com/katalvlaran/wfc/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmap_WritesAnHTMLPage(t *testing.T) {
	b := pattern.NewBuilder[string](topology.Cartesian2D())
	require.NoError(t, b.AddAdjacency([]string{"x"}, []string{"x"}, topology.XPlus))
	require.NoError(t, b.AddAdjacency([]string{"x"}, []string{"x"}, topology.YPlus))
	require.NoError(t, b.SetUniformFrequency())
	model, tileToPattern, patternToTile, err := b.Build()
	require.NoError(t, err)

	topo, err := topology.New(topology.Cartesian2D(), 3, 3, 1, false, false, false, nil)
	require.NoError(t, err)

	p, err := propagator.New(topo, model, propagator.Options{Seed: 1})
	require.NoError(t, err)
	require.Equal(t, propagator.StatusDecided, p.Run(0))

	tp := tilepropagator.New(p, tileToPattern, patternToTile)

	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, render.Heatmap(tp, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestHeatmap_RejectsNonFlatTopology(t *testing.T) {
	b := pattern.NewBuilder[string](topology.Cartesian3D())
	require.NoError(t, b.AddAdjacency([]string{"x"}, []string{"x"}, topology.XPlus))
	require.NoError(t, b.SetUniformFrequency())
	model, tileToPattern, patternToTile, err := b.Build()
	require.NoError(t, err)

	topo, err := topology.New(topology.Cartesian3D(), 2, 2, 2, false, false, false, nil)
	require.NoError(t, err)

	p, err := propagator.New(topo, model, propagator.Options{Seed: 1})
	require.NoError(t, err)

	tp := tilepropagator.New(p, tileToPattern, patternToTile)

	path := filepath.Join(t.TempDir(), "out.html")
	err = render.Heatmap(tp, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrNotFlat)
}
