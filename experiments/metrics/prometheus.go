package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver exports search metrics. It is safe for concurrent use.
type PrometheusObserver struct {
	searches     prometheus.Counter
	nodes        prometheus.Counter
	prunes       prometheus.Counter
	earlyRejects prometheus.Counter
	terminals    prometheus.Counter
	duration     *prometheus.HistogramVec
}

// NewPrometheusObserver registers the search metrics with reg, or with the
// default registry when reg is nil.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gomoku",
			Subsystem: "search",
			Name:      name,
			Help:      help,
		})
	}
	return &PrometheusObserver{
		searches:     counter("total", "Completed minimax searches"),
		nodes:        counter("nodes_total", "Search tree nodes visited"),
		prunes:       counter("prunes_total", "Alpha-beta cut-offs"),
		earlyRejects: counter("early_rejects_total", "Candidates skipped by the early reject heuristic"),
		terminals:    counter("terminals_total", "Candidates that won outright"),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gomoku",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time of a search by depth",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"depth"}),
	}
}

func (o *PrometheusObserver) ObserveSearch(m SearchMetric) {
	o.searches.Inc()
	o.nodes.Add(float64(m.Nodes))
	o.prunes.Add(float64(m.Prunes))
	o.earlyRejects.Add(float64(m.EarlyRejects))
	o.terminals.Add(float64(m.Terminals))
	o.duration.WithLabelValues(strconv.Itoa(m.Depth)).Observe(m.Duration.Seconds())
}
