package metrics_test

import (
	"testing"

	"github.com/katalvlaran/wfc/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RegistersFourCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.IncStep()
	r.IncStep()
	r.IncBacktrack()
	r.IncContradiction()
	r.SetUndecidedCells(7)

	gathered, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, gathered, 4)
}

func TestRecorder_SetUndecidedCellsOverwrites(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.SetUndecidedCells(10)
	r.SetUndecidedCells(3)

	gathered, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range gathered {
		if mf.GetName() == "wfc_cells_undecided" {
			found = true
			require.Len(t, mf.Metric, 1)
			require.Equal(t, float64(3), mf.Metric[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}
