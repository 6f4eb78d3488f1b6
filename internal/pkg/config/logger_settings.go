package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation defaults applied by NewFileLoggerSettings.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// LoggerSettings selects the log level and sink. Rotation fields only apply to file logging.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// NewConsoleLoggerSettings returns settings for a console logger at level.
func NewConsoleLoggerSettings(level string) *LoggerSettings {
	return &LoggerSettings{LogLevel: level, LogType: LogTypeConsole}
}

// NewFileLoggerSettings returns settings for a rotating file logger at level with default rotation.
func NewFileLoggerSettings(level, path string) *LoggerSettings {
	return &LoggerSettings{
		LogLevel:   level,
		LogType:    LogTypeFile,
		FilePath:   path,
		MaxSize:    DefaultLogMaxSizeMB,
		MaxBackups: DefaultLogMaxBackups,
		MaxAge:     DefaultLogMaxAgeDays,
	}
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType == LogTypeFile {
		return s.validateRotation()
	}
	return nil
}

func (s *LoggerSettings) validateRotation() error {
	switch {
	case s.FilePath == "":
		return errors.New("file path is required for file logger")
	case s.MaxSize < 1 || s.MaxSize > 100:
		return errors.New("max size must be between 1 and 100 MB")
	case s.MaxBackups < 1 || s.MaxBackups > 10:
		return errors.New("max backups must be between 1 and 10")
	case s.MaxAge < 1 || s.MaxAge > 365:
		return errors.New("max age must be between 1 and 365 days")
	}
	return nil
}
