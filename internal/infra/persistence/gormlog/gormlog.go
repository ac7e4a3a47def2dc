// Package gormlog routes gorm's statement log into slog. Each line goes to the request
// logger found in the statement context, so SQL output carries the request id.
package gormlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "himart/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks statements worth a warning.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface.
type Logger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// Option customises a Logger.
type Option func(*Logger)

// WithSlowThreshold overrides DefaultSlowThreshold. Zero disables slow query warnings.
func WithSlowThreshold(d time.Duration) Option {
	return func(l *Logger) {
		l.slowThreshold = d
	}
}

// WithLevel sets the gorm level. Info also logs every statement.
func WithLevel(level logger.LogLevel) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// New logs failed and slow statements to base unless a request logger is in context.
func New(base *slog.Logger, opts ...Option) *Logger {
	l := &Logger{
		base:          base,
		level:         logger.Warn,
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Logger) log(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.base
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.base)
}

func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *Logger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	if out := l.log(ctx); out != nil {
		out.LogAttrs(ctx, level, "Database message", slog.String("message", fmt.Sprintf(msg, args...)))
	}
}

// Trace reports one statement. Missing rows are expected lookups and never logged.
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	out := l.log(ctx)
	if out == nil {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		out.LogAttrs(ctx, slog.LevelError, "Database query failed",
			append(statementAttrs(fc, elapsed), slog.String("error", err.Error()))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		out.LogAttrs(ctx, slog.LevelWarn, "Slow database query",
			append(statementAttrs(fc, elapsed), slog.Duration("threshold", l.slowThreshold))...)
	case l.level >= logger.Info:
		out.LogAttrs(ctx, slog.LevelDebug, "Database query", statementAttrs(fc, elapsed)...)
	}
}

func statementAttrs(fc func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := fc()

	return []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
}
