// Package otel provides OpenTelemetry metric exporter bindings for goDigest counters and
// histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each goDigest metric
// and Int64ObservableGauge per histogram bucket. A single callback reads
// [goDigest.Digester.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate digester state.
package otel
