package render

import (
	"errors"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/katalvlaran/wfc/tilepropagator"
	"github.com/katalvlaran/wfc/wfcerr"
)

// ErrNotFlat is returned by Heatmap for any topology with Depth != 1 —
// a heatmap has no third axis to place it on.
var ErrNotFlat = errors.New("render: Heatmap only supports a Width x Height grid (Depth must be 1)")

// Heatmap writes an HTML page to path: one cell per grid position, colored
// by its decided pattern index, or a sentinel value (-1) for a cell still
// undecided.
func Heatmap[T comparable](prop *tilepropagator.TilePropagator[T], path string) error {
	topo := prop.Topology()
	if topo.Depth != 1 {
		return wfcerr.Programmer(ErrNotFlat)
	}
	wv := prop.Propagator().Wave()

	items := make([]opts.HeatMapData, 0, topo.CellCount())
	maxPattern := 0
	for c := 0; c < topo.CellCount(); c++ {
		x, y, _ := topo.Coordinate(c)
		value := -1
		if pat, ok := wv.DecidedPattern(c); ok {
			value = pat
			if pat > maxPattern {
				maxPattern = pat
			}
		}
		items = append(items, opts.HeatMapData{Value: [3]interface{}{x, y, value}})
	}

	xAxis := axisLabels(topo.Width)
	yAxis := axisLabels(topo.Height)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "wave function collapse result"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xAxis, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yAxis, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        float32(maxPattern),
			InRange:    &opts.VisualMapInRange{Color: []string{"#999999", "#0ea5e9", "#22c55e", "#ef4444"}},
		}),
	)
	hm.SetXAxis(xAxis).AddSeries("pattern", items)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return hm.Render(f)
}

func axisLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
