package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger printf-логгер поверх slog. Пишет в файл, чтобы не ломать вывод терминального UI.
type Logger struct {
	slog   *slog.Logger
	closer io.Closer
}

// New создает логгер. Пустой file означает stderr.
// Уровни: debug, info, warn, error (по умолчанию info).
func New(file string, level string) (*Logger, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", file, err)
		}
		out = f
		closer = f
	}

	return NewWithWriter(out, level, closer), nil
}

// NewWithWriter создает логгер поверх произвольного writer (используется в тестах)
func NewWithWriter(out io.Writer, level string, closer io.Closer) *Logger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		slog:   slog.New(handler),
		closer: closer,
	}
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return NewWithWriter(io.Discard, "error", nil)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(slog.LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
}

// Close закрывает файл лога
func (l *Logger) Close() {
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, v...))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
