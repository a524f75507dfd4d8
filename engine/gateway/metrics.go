package gateway

import (
	"context"
	"fmt"
	"time"

	monitoringmetrics "github.com/msbuild-skills/msbuild-expert/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const subsystem = "gateway"

// Outcome labels the terminal state of a request.
type Outcome string

const (
	OutcomeAugmented       Outcome = "augmented"
	OutcomeRedirected      Outcome = "redirected"
	OutcomeUnauthorized    Outcome = "unauthorized"
	OutcomeInvalidJSON     Outcome = "invalid_json"
	OutcomeNoUserMessage   Outcome = "no_user_message"
	OutcomePayloadTooLarge Outcome = "payload_too_large"
	OutcomeAbandoned       Outcome = "abandoned"
	OutcomeError           Outcome = "error"
)

// Metrics provides instrumentation for request processing
type Metrics struct {
	requestsTotal metric.Int64Counter
	intentsTotal  metric.Int64Counter
	duration      metric.Float64Histogram
	payloadSize   metric.Int64Histogram
}

// NewMetrics initializes gateway metrics using the provided meter. A nil
// meter yields metrics that record nothing.
func NewMetrics(_ context.Context, meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	if meter == nil {
		return m, nil
	}
	var err error
	m.requestsTotal, err = meter.Int64Counter(
		monitoringmetrics.MetricNameWithSubsystem(subsystem, "requests_total"),
		metric.WithDescription("Total requests by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway requests counter: %w", err)
	}
	m.intentsTotal, err = meter.Int64Counter(
		monitoringmetrics.MetricNameWithSubsystem(subsystem, "intents_total"),
		metric.WithDescription("Total in-scope requests by intent"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway intents counter: %w", err)
	}
	m.duration, err = meter.Float64Histogram(
		monitoringmetrics.MetricNameWithSubsystem(subsystem, "request_duration_seconds"),
		metric.WithDescription("Request processing duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(monitoringmetrics.HTTPDurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway duration histogram: %w", err)
	}
	m.payloadSize, err = meter.Int64Histogram(
		monitoringmetrics.MetricNameWithSubsystem(subsystem, "payload_size_bytes"),
		metric.WithDescription("Size distribution of request payloads"),
		metric.WithUnit("bytes"),
		metric.WithExplicitBucketBoundaries(monitoringmetrics.HTTPSizeBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway payload histogram: %w", err)
	}
	return m, nil
}

// ObserveOutcome records the terminal state and duration of a request.
func (m *Metrics) ObserveOutcome(ctx context.Context, outcome Outcome, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", string(outcome)))
	if m.requestsTotal != nil {
		m.requestsTotal.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, d.Seconds(), attrs)
	}
}

// OnIntent counts an in-scope request by intent.
func (m *Metrics) OnIntent(ctx context.Context, label string) {
	if m == nil || m.intentsTotal == nil {
		return
	}
	m.intentsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", label)))
}

// RecordPayloadSize observes request body sizes.
func (m *Metrics) RecordPayloadSize(ctx context.Context, n int) {
	if m == nil || m.payloadSize == nil || n < 0 {
		return
	}
	m.payloadSize.Record(ctx, int64(n))
}
