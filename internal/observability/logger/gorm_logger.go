package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 500 * time.Millisecond

// GormLogger routes GORM output to zap. Statements carry the run id of the
// calling context. Bound parameters are never logged.
type GormLogger struct {
	log       *zap.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

// NewGormLogger logs errors and slow statements, and every statement when
// verbose is set.
func NewGormLogger(log *zap.Logger, verbose bool) *GormLogger {
	if log == nil {
		log = zap.NewNop()
	}
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	return &GormLogger{log: log.Named("gorm"), level: level, slowQuery: defaultSlowQuery}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		WithContext(ctx, l.log).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		WithContext(ctx, l.log).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		WithContext(ctx, l.log).Sugar().Errorf(msg, data...)
	}
}

// Trace logs a finished statement. Missing rows are expected by snapshot
// lookups and are not treated as errors.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := elapsed > l.slowQuery

	if !failed && !slow && l.level < gormlogger.Info {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("statement", statementKind(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	log := WithContext(ctx, l.log)
	switch {
	case failed && l.level >= gormlogger.Error:
		log.Error("statement failed", append(fields, zap.String("sql", sql), zap.Error(err))...)
	case slow && l.level >= gormlogger.Warn:
		log.Warn("slow statement", append(fields, zap.String("sql", sql))...)
	case l.level >= gormlogger.Info:
		log.Debug("statement", append(fields, zap.String("sql", sql))...)
	}
}

// ParamsFilter drops bound values from rendered SQL.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

// statementKind names the leading SQL verb, skipping CTE prefixes.
func statementKind(sql string) string {
	for _, token := range strings.Fields(strings.ToUpper(sql)) {
		switch token = strings.Trim(token, "();"); token {
		case "SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER":
			return token
		}
	}
	return "OTHER"
}

var _ gormlogger.Interface = (*GormLogger)(nil)
