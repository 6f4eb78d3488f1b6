package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// SlogLogger is an implementation of Logger on top of a slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a logger writing text records to stdout.
func NewConsoleLogger(level string) Logger {
	return NewWriterLogger(level, os.Stdout)
}

// NewWriterLogger creates a logger writing text records to w.
func NewWriterLogger(level string, w io.Writer) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(w, opts))}
}

// NewFileLogger creates a logger writing JSON records to a rotating file.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return &SlogLogger{logger: slog.New(slog.NewJSONHandler(writer, opts))}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

// Info logs an informational message.
func (l *SlogLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

// Error logs an error message.
func (l *SlogLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs a fatal message and exits.
func (l *SlogLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	os.Exit(1)
}

// Panic logs a panic message and panics.
func (l *SlogLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}
