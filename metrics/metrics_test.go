package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg, "tournament").(*prometheusRecorder)

	rec.MatchReported(false)
	rec.MatchReported(true)
	rec.MatchReported(true)
	rec.MatchRejected("duplicate_pairing")
	rec.PlayerEnrolled()
	rec.StandingsComputed(4, 3*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.matchesReported.WithLabelValues("decisive")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.matchesReported.WithLabelValues("draw")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.matchesRejected.WithLabelValues("duplicate_pairing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.enrollments))

	count, err := testutil.GatherAndCount(reg, "tournament_standings_compute_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoop()
	assert.NotPanics(t, func() {
		rec.MatchReported(true)
		rec.MatchRejected("self_match")
		rec.PlayerEnrolled()
		rec.StandingsComputed(0, 0)
	})
}
