// Package metrics exposes Prometheus counters for key generation, signing and verification.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcome label values
const (
	VerificationValid   = "valid"
	VerificationInvalid = "invalid"
	VerificationError   = "error"
)

// Metrics contains the Prometheus metrics of the signing service
type Metrics struct {
	KeysGenerated         *prometheus.CounterVec
	KeyGenerationFailures prometheus.Counter
	KeyGenerationDuration prometheus.Histogram
	SignaturesCreated     prometheus.Counter
	SigningFailures       prometheus.Counter
	Verifications         *prometheus.CounterVec
}

// NewMetrics registers the metrics with the default registerer
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry registers the metrics with registry, or the default registerer when nil
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		KeysGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigvault_keys_generated_total",
			Help: "The total number of generated key pairs by modulus size",
		}, []string{"key_size"}),
		KeyGenerationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sigvault_key_generation_failures_total",
			Help: "The total number of failed or cancelled key generations",
		}),
		KeyGenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigvault_key_generation_duration_seconds",
			Help:    "Wall time of key pair generation",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		SignaturesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "sigvault_signatures_created_total",
			Help: "The total number of created signatures",
		}),
		SigningFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sigvault_signing_failures_total",
			Help: "The total number of rejected signing requests",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigvault_verifications_total",
			Help: "The total number of signature verifications by outcome",
		}, []string{"result"}),
	}
}
