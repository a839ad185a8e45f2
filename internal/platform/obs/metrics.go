package obs

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors of the service. A nil *Metrics
// is valid and records nothing, so components can run without metrics.
type Metrics struct {
	gatherer prometheus.Gatherer

	RouteSelections  *prometheus.CounterVec
	PersistFailures  prometheus.Counter
	VoyagesRecorded  prometheus.Counter
	ZonePassages     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDurations    *prometheus.HistogramVec
	PortCacheLookups *prometheus.CounterVec
}

// NewMetrics registers the collectors against reg, defaulting to the global
// registry when nil. Registering twice returns the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	selections, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_selections_total",
		Help: "Routes returned by the selector, labeled by provenance.",
	}, []string{"route_type"}), "route_selections_total")
	if err != nil {
		return nil, err
	}

	persistFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_persist_failures_total",
		Help: "Selected routes that could not be stored.",
	}), "route_persist_failures_total")
	if err != nil {
		return nil, err
	}

	voyages, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_voyages_recorded_total",
		Help: "Completed voyages folded into learned route patterns.",
	}), "route_voyages_recorded_total")
	if err != nil {
		return nil, err
	}

	passages, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zone_passages_total",
		Help: "Route passages through regulated zones found by zone reports, labeled by zone code.",
	}, []string{"zone"}), "zone_passages_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests, labeled by method, route pattern and status code.",
	}, []string{"method", "path", "code"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "path"}), "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	cacheLookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "port_cache_lookups_total",
		Help: "Port cache lookups, labeled by result (hit, miss, error).",
	}, []string{"result"}), "port_cache_lookups_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:         gatherer,
		RouteSelections:  selections,
		PersistFailures:  persistFailures,
		VoyagesRecorded:  voyages,
		ZonePassages:     passages,
		HTTPRequests:     requests,
		HTTPDurations:    durations,
		PortCacheLookups: cacheLookups,
	}, nil
}

// Handler exposes the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) RouteSelected(routeType string) {
	if m == nil {
		return
	}
	m.RouteSelections.WithLabelValues(routeType).Inc()
}

func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) VoyageRecorded() {
	if m == nil {
		return
	}
	m.VoyagesRecorded.Inc()
}

func (m *Metrics) ZonePassage(code string) {
	if m == nil {
		return
	}
	m.ZonePassages.WithLabelValues(code).Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.PortCacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(method, path string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDurations.WithLabelValues(method, path).Observe(dur.Seconds())
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
