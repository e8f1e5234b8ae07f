package observability

import (
	"testing"

	"github.com/smallbiznis/planshift/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigNormalizes(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:              " ",
		Environment:          " production ",
		LogLevel:             "WARN",
		LogFormat:            " JSON",
		OtelExporterProtocol: "HTTP",
		OtelSamplingRatio:    3,
	})

	assert.Equal(t, "planshift", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestDerivedConfigs(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:              "planshift",
		AppVersion:           "1.2.0",
		Environment:          "staging",
		LogLevel:             "debug",
		OtelEnabled:          true,
		OtelExporterEndpoint: "collector:4317",
		OtelExporterProtocol: "grpc",
		OtelSamplingRatio:    0.5,
	})

	log := cfg.Logger()
	assert.True(t, log.Debug)
	assert.True(t, log.IncludeCaller)
	assert.Equal(t, "1.2.0", log.Version)

	tr := cfg.Tracing()
	assert.True(t, tr.Enabled)
	assert.Equal(t, "collector:4317", tr.ExporterEndpoint)
	assert.Equal(t, 0.5, tr.SamplingRatio)

	m := cfg.Metrics()
	assert.Equal(t, "staging", m.Environment)
	assert.Equal(t, "grpc", m.ExporterProtocol)
}
