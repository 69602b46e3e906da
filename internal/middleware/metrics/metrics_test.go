package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsNamespacedMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/42", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	// collectors carry the jobdeck namespace
	assert.Equal(t, 1, testutil.CollectAndCount(requestsTotal, "jobdeck_http_requests_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(requestDuration, "jobdeck_http_request_duration_seconds"))

	// the route pattern, not the concrete path, is used as the label
	counted := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/jobs/{id}", "418"))
	assert.Equal(t, float64(1), counted)

	assert.Equal(t, float64(0), testutil.ToFloat64(requestsInFlight))
}

func TestRouteLabelFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/unrouted", nil)
	assert.Equal(t, "/unrouted", routeLabel(req))
}
