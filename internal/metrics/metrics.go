// Package metrics exposes Prometheus counters for generation, validation and catalog activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IdentifiersGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostforge_identifiers_generated_total",
		Help: "Total number of identifiers allocated, by sector",
	}, []string{"sector"})
	GenerateFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostforge_generate_failures_total",
		Help: "Total number of rejected generate requests, by error type",
	}, []string{"reason"})
	Validations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostforge_validations_total",
		Help: "Total number of hostname conformance checks, by outcome",
	}, []string{"result"})
	CatalogMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostforge_catalog_mutations_total",
		Help: "Total number of catalog add/remove operations that changed a catalog",
	}, []string{"kind", "op"})
	SnapshotSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostforge_snapshot_saves_total",
		Help: "Total number of snapshot persist attempts, by outcome",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(IdentifiersGenerated)
	prometheus.MustRegister(GenerateFailures)
	prometheus.MustRegister(Validations)
	prometheus.MustRegister(CatalogMutations)
	prometheus.MustRegister(SnapshotSaves)
}

// ValidationResult returns the label value for a validation outcome.
func ValidationResult(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
