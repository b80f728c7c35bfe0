// Package prometheus renders goDigest metrics in Prometheus text exposition format.
//
// [NewPrometheusExporter] accepts a [goDigest.Digester] and exposes an [http.Handler]
// that renders all goDigest counters and the hash latency histogram.
// Counter names are prefixed godigest_*_total; the single histogram is
// godigest_hash_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate digester state.
package prometheus
