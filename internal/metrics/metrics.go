// Package metrics exposes Prometheus instrumentation for the interview
// engine: HTTP middleware plus counters for the interview lifecycle.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interview",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	interviewsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_started_total",
		Help:      "Total number of interviews started",
	})

	interviewsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_completed_total",
		Help:      "Total number of interviews completed",
	})

	timerExpiries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "timer_expiries_total",
		Help:      "Total number of question timers that ran out",
	})

	evaluationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "evaluation_failures_total",
		Help:      "Total number of failed answer evaluations",
	}, []string{"provider"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "interview",
		Name:      "active_sessions",
		Help:      "Number of interview sessions currently in progress",
	})
)

func InterviewStarted() {
	interviewsStarted.Inc()
	activeSessions.Inc()
}

func InterviewEnded() { activeSessions.Dec() }

func InterviewCompleted() { interviewsCompleted.Inc() }

func TimerExpired() { timerExpiries.Inc() }

func EvaluationFailed(provider string) {
	evaluationFailures.WithLabelValues(provider).Inc()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack passthrough keeps the WebSocket upgrade working behind the
// middleware.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request counts and latencies with Prometheus labels.
// The path label is the matched route pattern, not the raw request path,
// so path parameters never explode the label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   routePattern(r),
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
