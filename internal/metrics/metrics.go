// Package metrics exposes Prometheus instrumentation for the sites.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sites_http_requests_total",
			Help: "Total number of HTTP requests by route pattern",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sites_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Session list metrics
	ToggleOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sites_toggle_operations_total",
			Help: "Total number of session list changes",
		},
		[]string{"list", "action"}, // action: "added", "removed", "set", "pruned"
	)

	// Form metrics
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sites_form_submissions_total",
			Help: "Total number of form submissions",
		},
		[]string{"form", "outcome"}, // outcome: "accepted", "rejected"
	)
)

// RecordToggle counts a change to a session-backed list.
func RecordToggle(list, action string) {
	ToggleOperations.WithLabelValues(list, action).Inc()
}

// RecordSubmission counts a form submission.
func RecordSubmission(form string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	FormSubmissions.WithLabelValues(form, outcome).Inc()
}

// Middleware records request counts and latency labelled by the matched chi
// route pattern, so /post/a and /post/b share one series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
