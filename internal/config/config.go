package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel  string
	LogFormat string

	CatalogPath string
	SnapshotDir string
	OutputPath  string
	CSVPath     string
	ReportPath  string
	RunLabel    string

	FromDB         bool
	PersistResults bool

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisURL    string
	RunLockTTL  time.Duration
	RunLockName string

	MetricsExporter  string
	MetricsEndpoint  string
	MetricsAuthToken string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "planshift"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "console")),

		CatalogPath: strings.TrimSpace(getenv("CATALOG_PATH", "")),
		SnapshotDir: getenv("SNAPSHOT_DIR", "data"),
		OutputPath:  getenv("OUTPUT_PATH", "data/migrate.json"),
		CSVPath:     strings.TrimSpace(getenv("CSV_PATH", "")),
		ReportPath:  strings.TrimSpace(getenv("REPORT_PDF_PATH", "")),
		RunLabel:    getenv("RUN_LABEL", "migration"),

		FromDB:         getenvBool("SNAPSHOT_FROM_DB", false),
		PersistResults: getenvBool("PERSIST_RESULTS", false),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "planshift"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBPath:            getenv("DATABASE_PATH", "planshift.db"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),

		RedisURL:    strings.TrimSpace(getenv("REDIS_URL", "")),
		RunLockTTL:  getenvDuration("RUN_LOCK_TTL", 15*time.Minute),
		RunLockName: getenv("RUN_LOCK_NAME", "planshift:run"),

		MetricsExporter:  strings.ToLower(strings.TrimSpace(getenv("METRICS_EXPORTER", "prometheus_pushgateway"))),
		MetricsEndpoint:  strings.TrimSpace(getenv("METRICS_ENDPOINT", "")),
		MetricsAuthToken: strings.TrimSpace(getenv("METRICS_AUTH_TOKEN", "")),

		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OtelExporterProtocol: strings.ToLower(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
		OtelSamplingRatio:    getenvFloat("OTEL_SAMPLING_RATIO", 1),
	}
}

// DatabaseEnabled reports whether any part of the run touches the database.
func (c Config) DatabaseEnabled() bool {
	return c.FromDB || c.PersistResults
}

func (c Config) Debug() bool {
	if c.LogLevel == "debug" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Module provides Config. Callers that parse flags supply their own Config with fx.Supply instead.
var Module = fx.Module("config",
	fx.Provide(NewCatalogHolder),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
