package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("travelbuddy-test")

	m.IncSearch("bus", SearchIssued)
	m.IncSearch("bus", SearchIssued)
	m.IncSearch("airport", SearchStale)
	m.IncSubmission("bus_details", SubmitUnresolved)
	m.ObserveBackendRequest("stations.search", http.MethodGet, 200, 40*time.Millisecond)
	m.ObserveBackendRequest("stations.search", http.MethodGet, 0, time.Second)

	body := scrape(t, m)
	assert.Contains(t, body, `typeahead_searches_total{entity_type="bus",outcome="issued",service="travelbuddy-test"} 2`)
	assert.Contains(t, body, `typeahead_searches_total{entity_type="airport",outcome="stale",service="travelbuddy-test"} 1`)
	assert.Contains(t, body, `form_submissions_total{form="bus_details",outcome="unresolved",service="travelbuddy-test"} 1`)
	assert.Contains(t, body, `backend_requests_total{endpoint="stations.search",method="GET",service="travelbuddy-test",status="error"} 1`)
	assert.Contains(t, body, `backend_requests_total{endpoint="stations.search",method="GET",service="travelbuddy-test",status="200"} 1`)
	assert.Contains(t, body, `backend_request_duration_seconds_count{endpoint="stations.search",method="GET",service="travelbuddy-test"} 2`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Handler(t *testing.T) {
	m := New("travelbuddy-test")
	m.IncSubmission("client_login", SubmitSucceeded)

	assert.Contains(t, scrape(t, m), `form_submissions_total{form="client_login",outcome="succeeded",service="travelbuddy-test"} 1`)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncSearch("bus", SearchIssued)
		m.IncSubmission("bus_details", SubmitInvalid)
		m.ObserveBackendRequest("x", http.MethodGet, 500, time.Millisecond)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
