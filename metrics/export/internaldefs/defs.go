package internaldefs

import (
	"strconv"
	"strings"

	goDigest "github.com/MrEthical07/goDigest"
)

// CounterDef names one goDigest counter for exporters.
type CounterDef struct {
	ID   goDigest.MetricID
	Name string
	Help string
}

// HistogramDef names one goDigest histogram for exporters.
type HistogramDef struct {
	ID   goDigest.MetricID
	Name string
	Help string
}

// AuditDroppedName is the counter exporters publish for Digester.AuditDropped.
const AuditDroppedName = "godigest_audit_dropped_total"

// CounterDefs lists every counter in export order.
var CounterDefs = []CounterDef{
	counter(goDigest.MetricHashSuccess, "Hashes produced, including upgrades."),
	counter(goDigest.MetricHashFailure, "Hash attempts that returned an error."),
	counter(goDigest.MetricVerifyMatch, "Verifications that matched."),
	counter(goDigest.MetricVerifyMismatch, "Verifications that did not match."),
	counter(goDigest.MetricUnrecognizedFormat, "Stored hashes no registered algorithm recognised."),
	counter(goDigest.MetricUpgradeIssued, "Upgraded hashes returned to callers."),
	counter(goDigest.MetricUpgradeFailed, "Upgrades that could not be produced or persisted."),
	counter(goDigest.MetricUpgradePersisted, "Upgraded hashes written back to the credential store."),
}

// HistogramDefs lists every histogram in export order.
var HistogramDefs = []HistogramDef{
	{ID: goDigest.MetricHashLatency, Name: "godigest_hash_latency_seconds", Help: "HashPassword latency histogram."},
}

// HistogramBounds are the Prometheus "le" labels matching goDigest.HistogramBucketBounds.
var HistogramBounds = boundLabels()

// HistogramBoundSuffix are HistogramBounds made safe for instrument names.
var HistogramBoundSuffix = boundSuffixes()

func counter(id goDigest.MetricID, help string) CounterDef {
	return CounterDef{ID: id, Name: "godigest_" + id.String() + "_total", Help: help}
}

func boundLabels() []string {
	out := make([]string, 0, len(goDigest.HistogramBucketBounds)+1)
	for _, d := range goDigest.HistogramBucketBounds {
		out = append(out, strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
	}
	return append(out, "+Inf")
}

func boundSuffixes() []string {
	labels := boundLabels()
	out := make([]string, len(labels))
	for i, l := range labels {
		if l == "+Inf" {
			out[i] = "inf"
			continue
		}
		out[i] = strings.ReplaceAll(l, ".", "_")
	}
	return out
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, padding with zeros.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
