package index

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for search indices.
// Several indices may share one Metrics; collectors are labeled by index
// mode.
type Metrics struct {
	EntriesAddedTotal  *prometheus.CounterVec
	SearchesTotal      *prometheus.CounterVec
	SearchResultsCount *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg, if reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EntriesAddedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textrun_index_entries_added_total",
				Help: "Total number of sort key entries added to indices.",
			},
			[]string{"mode"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textrun_index_searches_total",
				Help: "Total searches by result type (hit, zero_result, error).",
			},
			[]string{"mode", "result_type"},
		),
		SearchResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "textrun_index_search_results_count",
				Help:    "Number of items returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"mode"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.EntriesAddedTotal, m.SearchesTotal, m.SearchResultsCount)
	}
	return m
}

func (m *Metrics) added(mode Mode) {
	if m != nil {
		m.EntriesAddedTotal.WithLabelValues(mode.String()).Inc()
	}
}

func (m *Metrics) searched(mode Mode, results int, err error) {
	if m == nil {
		return
	}
	resultType := "hit"
	if err != nil {
		resultType = "error"
	} else if results == 0 {
		resultType = "zero_result"
	}
	m.SearchesTotal.WithLabelValues(mode.String(), resultType).Inc()
	if err == nil {
		m.SearchResultsCount.WithLabelValues(mode.String()).Observe(float64(results))
	}
}
