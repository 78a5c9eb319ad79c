package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/stockroom/pkg/logger"
)

// slogLogger routes gorm's output through the request-scoped slog logger.
type slogLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newSlogLogger(level gormlogger.LogLevel, slow time.Duration) gormlogger.Interface {
	return slogLogger{level: level, slowThreshold: slow}
}

func (l slogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l slogLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.WithCtx(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l slogLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.WithCtx(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l slogLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.WithCtx(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := logger.WithCtx(ctx)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Error("gorm query failed", "duration", elapsed.String(), "rows", rows, "sql", sql, "error", err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn("gorm slow query", "duration", elapsed.String(), "rows", rows, "sql", sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		log.Debug("gorm query", "duration", elapsed.String(), "rows", rows, "sql", sql)
	}
}
