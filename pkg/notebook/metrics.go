package notebook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "quire"

// metrics is nil-safe: a Notebook built without WithMetrics records nothing.
type metrics struct {
	saves    *prometheus.CounterVec
	loads    *prometheus.CounterVec
	warnings prometheus.Counter
	notes    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)

	return &metrics{
		saves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notebook_saves_total",
			Help:      "Notebook save attempts by result.",
		}, []string{"result"}),
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notebook_loads_total",
			Help:      "Notebook load attempts by result.",
		}, []string{"result"}),
		warnings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notebook_load_warnings_total",
			Help:      "Recoverable parse warnings raised while loading.",
		}),
		notes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "notebook_notes",
			Help:      "Notes currently held in memory.",
		}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *metrics) observeSave(err error) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(result(err)).Inc()
}

func (m *metrics) observeLoad(err error, warnings int) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result(err)).Inc()
	m.warnings.Add(float64(warnings))
}

func (m *metrics) setSize(n int) {
	if m == nil {
		return
	}
	m.notes.Set(float64(n))
}
