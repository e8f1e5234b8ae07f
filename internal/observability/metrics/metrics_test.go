package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("segment", "IN_HOUSE"),
		attribute.String("customer_id", "c-1"),
		attribute.String("plan", "pro"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("segment"), attrs[0].Key)
	assert.Equal(t, attribute.Key("plan"), attrs[1].Key)
}

func TestNilMetricsIgnoresRecords(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordCustomerEvaluated(ctx, "AGENCY", "growth")
		m.RecordMatchAbsent(ctx, "AGENCY")
		m.RecordRun(ctx, "ok", time.Second)
	})
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.RecordCustomerEvaluated(context.Background(), "IN_HOUSE", "pro")
	})
}

func TestNewProviderDisabledReturnsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	require.NoError(t, err)
	assert.IsType(t, noop.MeterProvider{}, provider)
}

func TestRecordsReachReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := New(Config{ServiceName: "planshift"}, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCustomerEvaluated(ctx, "IN_HOUSE", "pro")
	m.RecordCustomerEvaluated(ctx, "IN_HOUSE", "pro")
	m.RecordMatchAbsent(ctx, "AGENCY")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		sum, ok := metric.Data.(metricdata.Sum[int64])
		if !ok {
			continue
		}
		for _, point := range sum.DataPoints {
			totals[metric.Name] += point.Value
		}
	}
	assert.Equal(t, int64(2), totals["planshift_customers_evaluated_total"])
	assert.Equal(t, int64(1), totals["planshift_match_absent_total"])
}
