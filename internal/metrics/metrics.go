package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	classifierDegradationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reviewpulse",
			Name:      "classifier_degradations_total",
			Help:      "Requests served with the neutral default because the hosted classifier failed.",
		},
	)

	heuristicOverridesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reviewpulse",
			Name:      "heuristic_overrides_total",
			Help:      "Low-confidence classifications corrected by the keyword heuristic.",
		},
	)

	keyPointFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reviewpulse",
			Name:      "keypoint_fallbacks_total",
			Help:      "Key-point extractions served by the rule-based fallback instead of the generative model.",
		},
	)

	analysisSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reviewpulse",
			Name:      "analysis_seconds",
			Help:      "End-to-end review analysis latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
	)
)

// Register attaches the analyzer collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		classifierDegradationsTotal,
		heuristicOverridesTotal,
		keyPointFallbacksTotal,
		analysisSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func RecordClassifierDegradation() { classifierDegradationsTotal.Inc() }

func RecordHeuristicOverride() { heuristicOverridesTotal.Inc() }

func RecordKeyPointFallback() { keyPointFallbacksTotal.Inc() }

// ObserveAnalysis records one full analysis duration.
func ObserveAnalysis(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	analysisSeconds.Observe(duration.Seconds())
}
