package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes run-level instruments.
type Metrics struct {
	customersEvaluated metric.Int64Counter
	matchAbsent        metric.Int64Counter
	runDuration        metric.Float64Histogram
}

// NewProvider registers the global meter provider. Readers push every ten
// seconds and once more on stop. Disabled metrics record nothing.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := newExporter(ctx, cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, fmt.Errorf("metrics exporter: %w", err)
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName(cfg)),
		attribute.String("deployment.environment", cfg.Environment),
	)
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.StopHook(func(ctx context.Context) error {
			log.Debug("flushing meter provider")
			return provider.Shutdown(ctx)
		}))
	}

	log.Info("otel metrics enabled",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

func serviceName(cfg Config) string {
	if name := strings.TrimSpace(cfg.ServiceName); name != "" {
		return name
	}
	return "planshift"
}

// New configures the run instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(serviceName(cfg))

	customersEvaluated, err := meter.Int64Counter("planshift_customers_evaluated_total")
	if err != nil {
		return nil, err
	}
	matchAbsent, err := meter.Int64Counter("planshift_match_absent_total")
	if err != nil {
		return nil, err
	}
	runDuration, err := meter.Float64Histogram("planshift_run_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		customersEvaluated: customersEvaluated,
		matchAbsent:        matchAbsent,
		runDuration:        runDuration,
	}, nil
}

// RecordCustomerEvaluated counts a customer priced by the least-cost pass.
func (m *Metrics) RecordCustomerEvaluated(ctx context.Context, segment, plan string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("segment", strings.TrimSpace(segment)),
		attribute.String("plan", strings.TrimSpace(plan)),
	)
	m.customersEvaluated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordMatchAbsent counts customers with no tier priced under their spend.
func (m *Metrics) RecordMatchAbsent(ctx context.Context, segment string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("segment", strings.TrimSpace(segment)))
	m.matchAbsent.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRun observes the duration of a scenario run.
func (m *Metrics) RecordRun(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("outcome", strings.TrimSpace(outcome)))
	m.runDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

func newExporter(ctx context.Context, protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch p := strings.ToLower(strings.TrimSpace(protocol)); p {
	case "http", "http/protobuf":
		var opts []otlpmetrichttp.Option
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", p)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"segment": {},
	"plan":    {},
	"outcome": {},
}

// FilterAttributes keeps only segment, plan and outcome labels. Customer
// identifiers never reach a metric.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	kept := attrs[:0:0]
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; ok {
			kept = append(kept, attr)
		}
	}
	return kept
}
