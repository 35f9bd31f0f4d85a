// Package metrics exposes Prometheus counters and histograms for the
// file responder's request outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sendfile_http_requests_total",
		Help: "Total HTTP requests by status code.",
	}, []string{"status"})

	requestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sendfile_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	bytesServedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sendfile_bytes_served_total",
		Help: "Total response body bytes written to clients.",
	})

	rangeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sendfile_range_requests_total",
		Help: "Total requests answered with a 206 Partial Content response.",
	})
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestDuration,
		bytesServedTotal,
		rangeRequestsTotal,
	)
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served request's outcome.
func ObserveRequest(status int, bytes int64, duration time.Duration) {
	requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	requestDuration.Observe(duration.Seconds())
	bytesServedTotal.Add(float64(bytes))
	if status == http.StatusPartialContent {
		rangeRequestsTotal.Inc()
	}
}

type recorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (r *recorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}

// Middleware wraps next, recording ObserveRequest for every response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		ObserveRequest(rec.status, rec.bytes, time.Since(start))
	})
}
