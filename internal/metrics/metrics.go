// Package metrics holds the Prometheus collectors of the web service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dkyweb_page_views_total",
		Help: "Rendered pages by route pattern and language",
	}, []string{"route", "lang"})

	renderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dkyweb_render_errors_total",
		Help: "Template parse or execution failures by template",
	}, []string{"template"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dkyweb_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and status code",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "status"})
)

func IncPageView(route, lang string) { pageViews.WithLabelValues(route, lang).Inc() }

func IncRenderError(template string) { renderErrors.WithLabelValues(template).Inc() }

// ObserveRequest records the latency of a finished request.
func ObserveRequest(route string, status int, d time.Duration) {
	if route == "" {
		// unmatched paths share one series
		route = "unmatched"
	}
	requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
