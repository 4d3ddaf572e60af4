package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the container gateway.
type Metrics struct {
	registry                 *prometheus.Registry
	requestsTotal            prometheus.Counter
	errorsTotal              prometheus.Counter
	upstreamAttemptsTotal    prometheus.Counter
	upstreamRetriesTotal     prometheus.Counter
	cacheHitsTotal           prometheus.Counter
	cacheMissesTotal         prometheus.Counter
	cacheEvictionsTotal      prometheus.Counter
	containersAssembledTotal prometheus.Counter
	cachedContainers         prometheus.Gauge
}

// New creates and registers Prometheus metrics for the gateway.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	upstreamAttemptsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_upstream_attempts_total",
		Help: "Total number of GET attempts issued against upstream services, including retries",
	})
	upstreamRetriesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_upstream_retries_total",
		Help: "Total number of retried upstream attempts after transient failures",
	})
	cacheHitsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_cache_hits_total",
		Help: "Total number of container cache hits",
	})
	cacheMissesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_cache_misses_total",
		Help: "Total number of container cache misses",
	})
	cacheEvictionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_cache_evictions_total",
		Help: "Total number of containers evicted from the cache",
	})
	containersAssembledTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "container_assembled_total",
		Help: "Total number of containers assembled from upstream data",
	})
	cachedContainers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "container_cached_containers",
		Help: "Number of containers currently held in the cache",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		upstreamAttemptsTotal,
		upstreamRetriesTotal,
		cacheHitsTotal,
		cacheMissesTotal,
		cacheEvictionsTotal,
		containersAssembledTotal,
		cachedContainers,
	)

	return &Metrics{
		registry:                 registry,
		requestsTotal:            requestsTotal,
		errorsTotal:              errorsTotal,
		upstreamAttemptsTotal:    upstreamAttemptsTotal,
		upstreamRetriesTotal:     upstreamRetriesTotal,
		cacheHitsTotal:           cacheHitsTotal,
		cacheMissesTotal:         cacheMissesTotal,
		cacheEvictionsTotal:      cacheEvictionsTotal,
		containersAssembledTotal: containersAssembledTotal,
		cachedContainers:         cachedContainers,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncUpstreamAttempts increments the upstream attempt counter.
func (m *Metrics) IncUpstreamAttempts() {
	m.upstreamAttemptsTotal.Inc()
}

// IncUpstreamRetries increments the upstream retry counter.
func (m *Metrics) IncUpstreamRetries() {
	m.upstreamRetriesTotal.Inc()
}

// IncCacheHits increments the cache hit counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHitsTotal.Inc()
}

// IncCacheMisses increments the cache miss counter.
func (m *Metrics) IncCacheMisses() {
	m.cacheMissesTotal.Inc()
}

// IncCacheEvictions increments the cache eviction counter.
func (m *Metrics) IncCacheEvictions() {
	m.cacheEvictionsTotal.Inc()
}

// IncContainersAssembled increments the assembled container counter.
func (m *Metrics) IncContainersAssembled() {
	m.containersAssembledTotal.Inc()
}

// SetCachedContainers sets the cached containers gauge.
func (m *Metrics) SetCachedContainers(n int) {
	m.cachedContainers.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values
// (e.g. the number of cached containers).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
