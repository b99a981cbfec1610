package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("salon_test")

	m.IncBookingsCreated()
	m.IncBookingsCreated()
	m.IncBookingConflicts()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("salon_test")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/available-slots", http.StatusOK, 15*time.Millisecond)
	m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)
	m.ObserveSlotsGenerated(7)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `salon_test_http_requests_total{method="GET",route="/api/v1/available-slots",status="200"} 1`)
	assert.Contains(t, body, `salon_test_db_query_duration_seconds_count{operation="query",status="error"} 1`)
	assert.Contains(t, body, "salon_test_slots_generated_count 1")
}
