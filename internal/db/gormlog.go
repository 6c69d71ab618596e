package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cepip-app-go/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement tracing into the application logger.
// Failed statements log at error, slow ones at warn, the rest at debug.
type GormLogger struct {
	log   logger.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

func NewGormLogger(log logger.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{log: log, slow: slow, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *GormLogger) Warn(_ context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *GormLogger) Error(_ context.Context, message string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error("db: " + fmt.Sprintf(message, data...))
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.InternalError("db: statement failed", err, "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn("db: slow statement", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug("db: statement", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
