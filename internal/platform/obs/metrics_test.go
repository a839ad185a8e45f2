package obs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordAndExpose(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.RouteSelected("CALCULATED")
	m.RouteSelected("CALCULATED")
	m.RouteSelected("LEARNED")
	m.PersistFailed()
	m.ObserveHTTP(http.MethodPost, "/routes", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RouteSelections.WithLabelValues("CALCULATED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "route_selections_total"))
}

func TestMetricsRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	require.NoError(t, err)
	b, err := NewMetrics(reg)
	require.NoError(t, err)

	a.VoyageRecorded()
	assert.Equal(t, 1.0, testutil.ToFloat64(b.VoyagesRecorded))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RouteSelected("CALCULATED")
		m.PersistFailed()
		m.VoyageRecorded()
		m.ZonePassage("X")
		m.CacheLookup("hit")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
