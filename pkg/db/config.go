package db

import (
	"time"

	"github.com/smallbiznis/planshift/internal/config"
)

// Config describes the connection and pool settings.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	Tracing bool
	// LogStatements logs every statement, not only failed and slow ones.
	LogStatements bool
	// MetricsPushAddr is the Pushgateway receiving pool stats; empty disables them.
	MetricsPushAddr string
}

// FromConfig maps the application config onto connection settings.
func FromConfig(cfg config.Config) Config {
	return Config{
		Type:            cfg.DBType,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		SSLMode:         cfg.DBSSLMode,
		Path:            cfg.DBPath,
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTime) * time.Second,
		Tracing:         cfg.OtelEnabled,
		LogStatements:   cfg.LogLevel == "debug",
		MetricsPushAddr: metricsPushAddr(cfg),
	}
}

func metricsPushAddr(cfg config.Config) string {
	switch cfg.MetricsExporter {
	case "prometheus_pushgateway", "":
		return cfg.MetricsEndpoint
	default:
		return ""
	}
}
