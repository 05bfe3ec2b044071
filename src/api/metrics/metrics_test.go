package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())

	m.ObserveRequest("/missions", "POST", 200, 10*time.Millisecond)
	m.ObserveRequest("", "GET", 404, time.Millisecond)
	m.BreedLookup("known")
	m.BreedLookup("known")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/missions", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breedLookups.WithLabelValues("known")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/", "GET", 200, time.Millisecond)
		m.BreedLookup("error")
	})
}
