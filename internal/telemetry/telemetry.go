// Package telemetry exposes Prometheus instrumentation for the lattice
// builder and pricers: how many trees get built, how many Newton
// iterations calibration costs, how calibration fails, and how long
// pricer calls take. Registered in init() the same way the metrics file
// of a long-running bot registers its counters.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	TreesBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bk_trees_built_total",
		Help: "Number of Black-Karasinski trinomial lattices built.",
	})

	CalibrationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bk_calibration_failures_total",
			Help: "Drift calibration failures by reason.",
		},
		[]string{"reason"},
	)

	NewtonIterations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bk_newton_iterations",
		Help:    "Newton iterations consumed per drift solve.",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})

	PricerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bk_pricer_duration_seconds",
			Help:    "Wall-clock duration of pricer invocations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pricer"},
	)
)

func init() {
	prometheus.MustRegister(TreesBuilt, CalibrationFailures, NewtonIterations, PricerDuration)
}

// IncCalibrationFailure records a drift calibration failure by reason
// (e.g. "zero_derivative", "no_convergence").
func IncCalibrationFailure(reason string) { CalibrationFailures.WithLabelValues(reason).Inc() }

// ObservePricerDuration records how long a named pricer invocation took.
func ObservePricerDuration(pricer string, d time.Duration) {
	PricerDuration.WithLabelValues(pricer).Observe(d.Seconds())
}

// Timer starts a stopwatch for a named pricer and returns a func to stop
// it and record the observation, for use as `defer telemetry.Timer(name)()`.
func Timer(pricer string) func() {
	start := time.Now()
	return func() { ObservePricerDuration(pricer, time.Since(start)) }
}
