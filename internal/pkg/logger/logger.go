// Package logger provides the application logger: a small leveled interface
// backed by log/slog, writing either to the console or to a rotating file.
package logger

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
