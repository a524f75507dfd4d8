package monitoring

import (
	"context"
	"runtime"
	"time"

	"github.com/msbuild-skills/msbuild-expert/engine/infra/monitoring/metrics"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/msbuild-skills/msbuild-expert/pkg/version"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// systemMetrics exposes build info and uptime for the running process.
type systemMetrics struct {
	buildInfo    metric.Float64Gauge
	uptime       metric.Float64ObservableGauge
	registration metric.Registration
	start        time.Time
}

func newSystemMetrics(ctx context.Context, meter metric.Meter) *systemMetrics {
	log := logger.FromContext(ctx)
	s := &systemMetrics{start: time.Now()}
	var err error
	s.buildInfo, err = meter.Float64Gauge(
		metrics.MetricName("build_info"),
		metric.WithDescription("Build information (value=1)"),
	)
	if err != nil {
		log.Error("Failed to create build info gauge", "error", err)
	}
	s.uptime, err = meter.Float64ObservableGauge(
		metrics.MetricName("uptime_seconds"),
		metric.WithDescription("Service uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Error("Failed to create uptime gauge", "error", err)
		return s
	}
	s.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveFloat64(s.uptime, time.Since(s.start).Seconds())
		return nil
	}, s.uptime)
	if err != nil {
		log.Error("Failed to register uptime callback", "error", err)
	}
	s.recordBuildInfo(ctx)
	return s
}

func (s *systemMetrics) recordBuildInfo(ctx context.Context) {
	if s.buildInfo == nil {
		return
	}
	info := version.Get()
	s.buildInfo.Record(ctx, 1,
		metric.WithAttributes(
			attribute.String("version", info.Version),
			attribute.String("commit_hash", info.CommitHash),
			attribute.String("go_version", runtime.Version()),
		),
	)
}

func (s *systemMetrics) close() error {
	if s == nil || s.registration == nil {
		return nil
	}
	return s.registration.Unregister()
}
