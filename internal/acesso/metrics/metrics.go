// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "acesso"

var (
	// DecisionsTotal counts guard outcomes. Reason is empty for allow and redirect.
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard decisions by kind and reason.",
		},
		[]string{"kind", "reason"},
	)

	// UnknownRolesTotal counts tokens whose role claim is not in the catalog.
	UnknownRolesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_roles_total",
			Help:      "Requests carrying a role claim absent from the catalog.",
		},
	)

	AuditFlushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_flushes_total",
			Help:      "Decision log flushes by status.",
		},
		[]string{"status"},
	)

	AuditRecordsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_records_written_total",
			Help:      "Decision records persisted.",
		},
	)

	AuditRecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_records_dropped_total",
			Help:      "Decision records discarded after a failed flush or a full buffer.",
		},
	)

	AuditBuffered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_buffered_records",
			Help:      "Decision records waiting to be flushed.",
		},
	)

	AuditRecordsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_records_purged_total",
			Help:      "Decision records deleted by retention housekeeping.",
		},
	)

	JWKSRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jwks_refresh_total",
			Help:      "JWKS refresh attempts by status.",
		},
		[]string{"status"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2.5, 10),
		},
		[]string{"method", "path"},
	)
)

// ObserveJWKSRefresh has the shape of jwtx.Refresher.OnResult.
func ObserveJWKSRefresh(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	JWKSRefreshTotal.WithLabelValues(status).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// HTTPMiddleware records request counts and latency. The path label is the
// ServeMux pattern so raw paths never explode cardinality.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		HTTPRequestDurationSeconds.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
