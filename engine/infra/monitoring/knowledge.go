package monitoring

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/msbuild-skills/msbuild-expert/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// KnowledgeSource is the read side of the knowledge store.
type KnowledgeSource interface {
	Names() []string
	Get(name string) (string, bool)
}

// ObserveKnowledge exports the number of loaded bundles and the size of each
// in characters. The source is read once; it must not change afterwards.
func (s *Service) ObserveKnowledge(_ context.Context, src KnowledgeSource) error {
	if !s.initialized || src == nil {
		return nil
	}
	names := src.Names()
	sizes := make([]int64, len(names))
	for i, name := range names {
		text, _ := src.Get(name)
		sizes[i] = int64(utf8.RuneCountInString(text))
	}
	bundles, err := s.meter.Int64ObservableGauge(
		metrics.MetricNameWithSubsystem("knowledge", "bundles"),
		metric.WithDescription("Knowledge bundles loaded at startup"),
	)
	if err != nil {
		return fmt.Errorf("failed to create knowledge bundles gauge: %w", err)
	}
	chars, err := s.meter.Int64ObservableGauge(
		metrics.MetricNameWithSubsystem("knowledge", "bundle_chars"),
		metric.WithDescription("Size of each loaded knowledge bundle in characters"),
	)
	if err != nil {
		return fmt.Errorf("failed to create knowledge size gauge: %w", err)
	}
	reg, err := s.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(bundles, int64(len(names)))
		for i, name := range names {
			o.ObserveInt64(chars, sizes[i], metric.WithAttributes(attribute.String("bundle", name)))
		}
		return nil
	}, bundles, chars)
	if err != nil {
		return fmt.Errorf("failed to register knowledge callback: %w", err)
	}
	s.registrations = append(s.registrations, reg)
	return nil
}
