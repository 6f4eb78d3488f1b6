package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"
)

// ErrNotInitialized is returned by GetLogger before a successful InitLogger.
var ErrNotInitialized = errors.New("logger not initialized: call InitLogger first")

var (
	instanceMu sync.Mutex
	instance   Logger
)

// InitLogger installs the process-wide logger. Once a logger is installed
// later calls are no-ops, so the first valid settings win.
func InitLogger(settings *config.LoggerSettings) error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		return nil
	}
	l, err := NewLogger(settings)
	if err != nil {
		return err
	}
	instance = l
	return nil
}

// GetLogger returns the process-wide logger.
func GetLogger() (Logger, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance, nil
}

// NewLogger builds a logger from settings without touching the process-wide instance.
func NewLogger(settings *config.LoggerSettings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if settings.LogType == config.LogTypeFile {
		return NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge), nil
	}
	return NewConsoleLogger(settings.LogLevel), nil
}

var levels = map[string]slog.Level{
	config.LogLevelDebug:    slog.LevelDebug,
	config.LogLevelInfo:     slog.LevelInfo,
	config.LogLevelWarning:  slog.LevelWarn,
	config.LogLevelError:    slog.LevelError,
	config.LogLevelCritical: slog.LevelError,
}

// parseLevel maps a configured level to slog. Unknown levels log at info.
func parseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelInfo
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
