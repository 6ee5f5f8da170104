package metrics

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

func TestCollector_ObserveOptimization(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.ObserveOptimization("branchbound", OutcomeOptimal, 20*time.Millisecond)
	c.ObserveOptimization("branchbound", OutcomeOptimal, 10*time.Millisecond)
	c.ObserveOptimization("glpk", OutcomeUnavailable, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Optimizations.WithLabelValues("branchbound", OutcomeOptimal)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Optimizations.WithLabelValues("glpk", OutcomeUnavailable)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.OptimizationDuration))
}

func TestCollector_Gauges(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.SetCatalog(1234, 12)
	c.SetProximityMatches(87)

	assert.Equal(t, 1234.0, testutil.ToFloat64(c.CatalogStations))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.CatalogDistricts))
	assert.Equal(t, 87.0, testutil.ToFloat64(c.ProximityMatches))
}

func TestCollector_HTTPAndCache(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveHTTP("GET", "/api/v1/stations", 200)
	c.ObserveHTTP("GET", "/api/v1/stations", 404)
	c.CacheHit("nodes")
	c.CacheMiss("nodes")
	c.CacheMiss("nodes")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/stations", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/stations", "404")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheRequests.WithLabelValues("nodes", "miss")))
}

func TestCollector_ReRegisterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.ObserveHTTP("POST", "/api/v1/optimize", 200)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.HTTPRequests.WithLabelValues("POST", "/api/v1/optimize", "200")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveOptimization("branchbound", OutcomeOptimal, time.Second)
		c.SetCatalog(1, 1)
		c.SetProximityMatches(1)
		c.ObserveHTTP("GET", "/", 200)
		c.CacheHit("stats")
	})
}

func TestCollector_Handler(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	c.SetCatalog(5, 2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "siting_catalog_stations 5"))
}
