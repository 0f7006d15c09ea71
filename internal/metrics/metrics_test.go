package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPageViewsCounter(t *testing.T) {
	before := testutil.ToFloat64(pageViews.WithLabelValues("/servicios", "es"))
	IncPageView("/servicios", "es")
	IncPageView("/servicios", "es")
	require.Equal(t, before+2, testutil.ToFloat64(pageViews.WithLabelValues("/servicios", "es")))
}

func TestRenderErrorsCounter(t *testing.T) {
	before := testutil.ToFloat64(renderErrors.WithLabelValues("doc"))
	IncRenderError("doc")
	require.Equal(t, before+1, testutil.ToFloat64(renderErrors.WithLabelValues("doc")))
}

func TestRequestDurationExposed(t *testing.T) {
	ObserveRequest("", http.StatusNotFound, 3*time.Millisecond)
	ObserveRequest("/docs/*", http.StatusOK, 2*time.Millisecond)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `dkyweb_http_request_duration_seconds_count{route="unmatched",status="404"}`))
	require.True(t, strings.Contains(body, `route="/docs/*",status="200"`))
}
