package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveTravelLookup("ok", 20*time.Millisecond)
	m.ObserveTravelLookup("error", 5*time.Millisecond)
	m.ObserveTravelLookup("error", 5*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/providers/{providerId}/available-slots", 200, time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.travelLookups.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.travelLookups.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/providers/{providerId}/available-slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query")))
}
