package web

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmicvar_estimates_total",
			Help: "Total variance estimates served, by survey field and outcome.",
		},
		[]string{"survey", "outcome"},
	)

	unmappedBinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cosmicvar_unmapped_bins_total",
			Help: "Requests whose log stellar mass was not a tabulated bin center.",
		},
	)

	metricsOnce sync.Once
)

// registerMetrics registers the collectors exactly once, however many
// servers are constructed.
func registerMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(estimatesTotal, unmappedBinsTotal)
	})
}
