package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Ledger outcomes reported on ledger.transactions.
const (
	OutcomeRecorded = "recorded"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// LedgerMetrics counts ledger activity. A nil *LedgerMetrics records nothing.
type LedgerMetrics struct {
	transactions   *Counter
	amount         *FloatCounter
	appendFailures *Counter
	duration       *Histogram
}

// NewLedgerMetrics registers the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	transactions, err := NewCounter(meter, "ledger.transactions", "Ledger transaction attempts by kind and outcome", "{transaction}")
	if err != nil {
		return nil, err
	}
	amount, err := NewFloatCounter(meter, "ledger.amount", "Recorded transaction amount by kind", "1")
	if err != nil {
		return nil, err
	}
	appendFailures, err := NewCounter(meter, "ledger.append_failures", "Balance updates committed without a ledger entry", "{transaction}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "ledger.record.duration",
		Description: "Time to apply a balance update and append the entry",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		transactions:   transactions,
		amount:         amount,
		appendFailures: appendFailures,
		duration:       duration,
	}, nil
}

// Observe records one RecordTransaction call.
func (m *LedgerMetrics) Observe(ctx context.Context, kind, outcome string, amount float64, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrKind.String(kind), AttrOutcome.String(outcome)}
	m.transactions.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
	if outcome == OutcomeRecorded {
		m.amount.Add(ctx, amount, AttrKind.String(kind))
	}
}

// AppendFailed counts a committed balance update whose ledger entry was lost.
func (m *LedgerMetrics) AppendFailed(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.appendFailures.Inc(ctx, AttrKind.String(kind))
}
