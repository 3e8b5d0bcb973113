package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements propagator.MetricsRecorder over four Prometheus
// collectors: wfc_backtracks_total, wfc_steps_total,
// wfc_contradictions_total, wfc_cells_undecided.
type Recorder struct {
	backtracks     prometheus.Counter
	steps          prometheus.Counter
	contradictions prometheus.Counter
	undecided      prometheus.Gauge
}

// New registers a Recorder's collectors against reg. Pass
// prometheus.DefaultRegisterer to publish on the process-wide default
// registry, or a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		backtracks: factory.NewCounter(prometheus.CounterOpts{
			Name: "wfc_backtracks_total",
			Help: "Total number of backtrack frames undone.",
		}),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "wfc_steps_total",
			Help: "Total number of observation steps taken.",
		}),
		contradictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "wfc_contradictions_total",
			Help: "Total number of terminal contradictions (backtracking exhausted).",
		}),
		undecided: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wfc_cells_undecided",
			Help: "Cells not yet decided as of the most recent resolve.",
		}),
	}
}

func (r *Recorder) IncBacktrack()           { r.backtracks.Inc() }
func (r *Recorder) IncStep()                { r.steps.Inc() }
func (r *Recorder) IncContradiction()       { r.contradictions.Inc() }
func (r *Recorder) SetUndecidedCells(n int) { r.undecided.Set(float64(n)) }
