package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/smallbiznis/planshift/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func TestDialectSelectsDriver(t *testing.T) {
	cases := map[string]string{
		"postgres": "postgres",
		"mysql":    "mysql",
		"sqlite":   "sqlite",
		"":         "sqlite",
	}
	for typ, want := range cases {
		d, err := Dialect(Config{Type: typ})
		require.NoError(t, err, typ)
		assert.Equal(t, want, d.Name(), typ)
	}

	_, err := Dialect(Config{Type: "oracle"})
	require.Error(t, err)
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planshift.db")
	conn, err := Open(Config{Type: "sqlite", Path: path, MaxOpenConn: 1, LogStatements: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var one int
	require.NoError(t, conn.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestFromConfigConvertsDurations(t *testing.T) {
	cfg := FromConfig(config.Config{DBType: "postgres", DBConnMaxLifetime: 300, DBConnMaxIdleTime: 60, MetricsEndpoint: "http://gw"})
	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, float64(300), cfg.ConnMaxLifetime.Seconds())
	assert.Equal(t, float64(60), cfg.ConnMaxIdleTime.Seconds())
	assert.Equal(t, "http://gw", cfg.MetricsPushAddr)
	assert.False(t, cfg.Tracing)
	assert.False(t, cfg.LogStatements)

	rw := FromConfig(config.Config{MetricsExporter: "prometheus_remote_write", MetricsEndpoint: "http://prom"})
	assert.Empty(t, rw.MetricsPushAddr)
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: customers.id")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}
