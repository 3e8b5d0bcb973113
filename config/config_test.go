package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/wfc/config"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ruleYAML = `
directions: cartesian2d
topology:
  width: 3
  height: 3
  depth: 1
tiles:
  - name: grass
    frequency: 1
    adjacencies:
      - direction: XPlus
        to: ["grass"]
      - direction: YPlus
        to: ["grass"]
seed: 7
backtrackDepth: -1
`

func TestLoad_CompilesAndRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ruleYAML), 0o644))

	b, topo, opts, err := config.Load(path)
	require.NoError(t, err)

	model, tileToPattern, _, err := b.Build()
	require.NoError(t, err)

	p, err := propagator.New(topo, model, opts)
	require.NoError(t, err)
	require.Equal(t, propagator.StatusUndecided, p.Status())

	status := p.Run(0)
	require.Equal(t, propagator.StatusDecided, status)
	want := tileToPattern["grass"]
	for c := 0; c < topo.CellCount(); c++ {
		got, ok := p.Wave().DecidedPattern(c)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestLoad_RejectsDuplicateTileNames(t *testing.T) {
	const dupYAML = `
directions: cartesian2d
topology: { width: 1, height: 1, depth: 1 }
tiles:
  - name: grass
    frequency: 1
  - name: grass
    frequency: 1
`
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dupYAML), 0o644))

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrDuplicateTileName)
}

func TestLoad_RejectsUnknownDirectionSet(t *testing.T) {
	const badYAML = `
directions: hexagonal
topology: { width: 1, height: 1, depth: 1 }
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(badYAML), 0o644))

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownDirectionSet)
}
