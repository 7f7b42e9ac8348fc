// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for navigations.
//
// Metrics collected:
//   - pageswap_navigations_total: Counter of navigations by status
//   - pageswap_renderer_lookups_total: Counter of renderer lookups by outcome
//   - pageswap_transition_lookups_total: Counter of transition lookups by outcome
//   - pageswap_fetch_duration_seconds: Histogram of page fetch duration by source
//   - pageswap_parse_duration_seconds: Histogram of markup parse duration
//
// Slugs are not used as labels; they are caller controlled and unbounded.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	registry.Observer = m
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// supplied with WithTracerProvider.
package telemetry
