package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys.
const (
	ProfilingLabelOperation = "operation"
	ProfilingLabelRegion    = "region"
	ProfilingLabelKind      = "kind"
)

// MaxLabelValueLength caps label values to keep profile series bounded.
const MaxLabelValueLength = 64

// highCardinalityLabels never become profiling labels. Shop and customer ids
// grow with the user base.
var highCardinalityLabels = map[string]bool{
	"shop_id":        true,
	"customer_id":    true,
	"transaction_id": true,
	"request_id":     true,
	"trace_id":       true,
	"span_id":        true,
}

// WithProfilingLabels runs fn with pprof labels attached, so CPU and
// allocation samples taken inside fn can be filtered by them in Pyroscope.
// Without a running profiler the labels are set but nothing reads them.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// LedgerLabels labels a ledger code region. Unknown kinds collapse to
// "other" because the kind is client input.
func LedgerLabels(operation, region, kind string) map[string]string {
	labels := map[string]string{
		ProfilingLabelOperation: operation,
		ProfilingLabelRegion:    region,
	}
	if kind != "" {
		labels[ProfilingLabelKind] = boundedKind(kind)
	}
	return labels
}

func boundedKind(kind string) string {
	switch kind {
	case "credit", "payment":
		return kind
	default:
		return "other"
	}
}

// sanitizeLabels returns sorted key/value pairs, dropping empty and
// high-cardinality entries and truncating long values.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		key = sanitizeLabelKey(key)
		if key == "" || value == "" || highCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, key, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases key and keeps only [a-z0-9_], mapping spaces
// and dashes to underscores.
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			out = append(out, c)
		}
	}
	return string(out)
}
