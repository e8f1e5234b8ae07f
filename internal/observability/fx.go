package observability

import (
	"github.com/smallbiznis/planshift/internal/observability/logger"
	"github.com/smallbiznis/planshift/internal/observability/metrics"
	"github.com/smallbiznis/planshift/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the process logger, the OTel providers and the run
// instruments. The tracer provider is always constructed.
var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		Config.Logger,
		Config.Tracing,
		Config.Metrics,
		logger.New,
		tracing.NewProvider,
		metrics.NewProvider,
		metrics.New,
	),
	fx.Invoke(announce),
)

func announce(cfg Config, _ *sdktrace.TracerProvider, log *zap.Logger) {
	log.Debug("observability ready",
		zap.String("service", cfg.ServiceName),
		zap.Bool("otel", cfg.OtelEnabled),
		zap.String("protocol", cfg.OtelExporterProtocol),
	)
}
