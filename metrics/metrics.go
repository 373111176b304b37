// Package metrics exposes tournament counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what the services report to.
type Recorder interface {
	MatchReported(draw bool)
	MatchRejected(reason string)
	PlayerEnrolled()
	StandingsComputed(players int, took time.Duration)
}

type prometheusRecorder struct {
	matchesReported   *prometheus.CounterVec
	matchesRejected   *prometheus.CounterVec
	enrollments       prometheus.Counter
	standingsDuration prometheus.Histogram
	standingsSize     prometheus.Histogram
}

// NewPrometheusRecorder registers the collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) Recorder {
	r := &prometheusRecorder{
		matchesReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_reported_total",
			Help:      "Match results accepted, by outcome.",
		}, []string{"outcome"}),
		matchesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_rejected_total",
			Help:      "Match reports rejected by validation, by reason.",
		}, []string{"reason"}),
		enrollments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_total",
			Help:      "Players enrolled in tournaments.",
		}),
		standingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_compute_seconds",
			Help:      "Time spent loading and ranking standings.",
			Buckets:   prometheus.DefBuckets,
		}),
		standingsSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_players",
			Help:      "Number of rows in computed standings.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 8),
		}),
	}
	reg.MustRegister(r.matchesReported, r.matchesRejected, r.enrollments, r.standingsDuration, r.standingsSize)
	return r
}

func (r *prometheusRecorder) MatchReported(draw bool) {
	outcome := "decisive"
	if draw {
		outcome = "draw"
	}
	r.matchesReported.WithLabelValues(outcome).Inc()
}

func (r *prometheusRecorder) MatchRejected(reason string) {
	r.matchesRejected.WithLabelValues(reason).Inc()
}

func (r *prometheusRecorder) PlayerEnrolled() {
	r.enrollments.Inc()
}

func (r *prometheusRecorder) StandingsComputed(players int, took time.Duration) {
	r.standingsDuration.Observe(took.Seconds())
	r.standingsSize.Observe(float64(players))
}

type noopRecorder struct{}

// NewNoop returns a Recorder that drops everything.
func NewNoop() Recorder { return noopRecorder{} }

func (noopRecorder) MatchReported(bool) {}
func (noopRecorder) MatchRejected(string) {}
func (noopRecorder) PlayerEnrolled() {}
func (noopRecorder) StandingsComputed(int, time.Duration) {}
