package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/pageswap/pkg/resolve"
)

// Navigation statuses.
const (
	StatusOK         = "ok"
	StatusAnchor     = "anchor"
	StatusNoView     = "no_view"
	StatusFetchError = "fetch_error"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pageswap").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for fetch and parse duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pageswap",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation collectors. A nil *Metrics records nothing.
type Metrics struct {
	navigations       *prometheus.CounterVec
	rendererLookups   *prometheus.CounterVec
	transitionLookups *prometheus.CounterVec
	fetchDuration     *prometheus.HistogramVec
	parseDuration     prometheus.Histogram
}

var _ resolve.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the collectors. Registering twice on the
// same registry panics, so create one Metrics per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		rendererLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renderer_lookups_total",
			Help:        "Total number of renderer lookups by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		transitionLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transition_lookups_total",
			Help:        "Total number of transition lookups by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fetch_duration_seconds",
			Help:        "Page fetch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"source"}),

		parseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "parse_duration_seconds",
			Help:        "Markup parse duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// ObserveRenderer implements resolve.Observer.
func (m *Metrics) ObserveRenderer(_ string, outcome resolve.Outcome) {
	if m == nil {
		return
	}
	m.rendererLookups.WithLabelValues(string(outcome)).Inc()
}

// ObserveTransition implements resolve.Observer.
func (m *Metrics) ObserveTransition(_ string, outcome resolve.Outcome) {
	if m == nil {
		return
	}
	m.transitionLookups.WithLabelValues(string(outcome)).Inc()
}

// RecordNavigation counts a finished navigation.
func (m *Metrics) RecordNavigation(status string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(status).Inc()
}

// ObserveFetch records how long a page fetch took.
func (m *Metrics) ObserveFetch(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveParse records how long a markup parse took.
func (m *Metrics) ObserveParse(d time.Duration) {
	if m == nil {
		return
	}
	m.parseDuration.Observe(d.Seconds())
}
