package logger

import (
	"context"
	"log/slog"
	"os"
)

// SlogAdapter implements Logger on top of the standard library's
// structured logger. Library consumers with their own logging stack should
// implement Logger directly instead.
type SlogAdapter struct {
	logger *slog.Logger
	fields []Field
}

// NewSlogAdapter builds a SlogAdapter writing to the given handler, or to a
// text handler on os.Stderr if handler is nil.
func NewSlogAdapter(handler slog.Handler) *SlogAdapter {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

func (a *SlogAdapter) Debug(msg string, fields ...Field) { a.log(slog.LevelDebug, msg, fields) }
func (a *SlogAdapter) Info(msg string, fields ...Field)  { a.log(slog.LevelInfo, msg, fields) }
func (a *SlogAdapter) Warn(msg string, fields ...Field)  { a.log(slog.LevelWarn, msg, fields) }
func (a *SlogAdapter) Error(msg string, fields ...Field) { a.log(slog.LevelError, msg, fields) }

func (a *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{logger: a.logger, fields: append(append([]Field{}, a.fields...), fields...)}
}

func (a *SlogAdapter) WithError(err error) Logger {
	return a.With(Err(err))
}

func (a *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	all := append(append([]Field{}, a.fields...), fields...)
	args := make([]any, 0, len(all)*2)
	for _, f := range all {
		args = append(args, f.Key, f.Value)
	}
	a.logger.Log(context.Background(), level, msg, args...)
}
