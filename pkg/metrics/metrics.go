// Package metrics holds the Prometheus collectors for the service and the
// HTTP middleware that feeds them.
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockroom"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Duration of database queries in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation", "table"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total list-cache hits.",
		},
		[]string{"driver", "key"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total list-cache misses.",
		},
		[]string{"driver", "key"},
	)

	// InventoryChanges counts committed writes, e.g. event="product.created".
	InventoryChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "changes_total",
			Help:      "Committed product and supplier writes.",
		},
		[]string{"event"},
	)

	FeedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "inventory",
		Name:      "feed_clients",
		Help:      "Connected inventory feed clients.",
	})
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		DBQueryDuration,
		CacheHits,
		CacheMisses,
		InventoryChanges,
		FeedClients,
	)
}

// MustRegister adds collectors to Registry.
func MustRegister(c ...prometheus.Collector) {
	Registry.MustRegister(c...)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets WebSocket upgrades pass through the recorder.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

func (r *responseRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Middleware records duration, count and in-flight requests. Routes are
// labelled by their chi pattern so ids do not explode cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, route, status).Inc()
		})
	}
}

// Handler serves Registry in the Prometheus text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}).ServeHTTP
}

// ObserveDBQuery records a query duration:
//
//	defer metrics.ObserveDBQuery("select", "products", time.Now())
func ObserveDBQuery(operation, table string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// CacheLookup records a hit or a miss for key on driver.
func CacheLookup(driver, key string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(driver, key).Inc()
		return
	}
	CacheMisses.WithLabelValues(driver, key).Inc()
}
