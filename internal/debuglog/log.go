package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown values fall back to OFF
// so a typo in the config never starts writing logs.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelOff
	}
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

var (
	currentLevel = LevelOff
	logger       *logrus.Logger
	logFile      *os.File
)

// DefaultPath is where logs go when Setup is called without a file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vidsrch", "vidsrch.log")
}

// Setup configures the logging system with the specified level and optional file path.
// The TUI owns stdout, so logs only ever go to a file.
func Setup(level LogLevel, filePath ...string) error {
	currentLevel = level

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if level == LevelOff {
		logger = nil
		return nil
	}

	logPath := DefaultPath()
	if len(filePath) > 0 && filePath[0] != "" {
		logPath = filePath[0]
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	logFile = f
	SetOutput(f)
	return nil
}

// SetOutput routes log output to w at the current level. Tests use it with a buffer.
func SetOutput(w io.Writer) {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})
	l.SetLevel(currentLevel.logrusLevel())
	logger = l
}

// SetLevel changes the current logging level
func SetLevel(level LogLevel) {
	currentLevel = level
	if logger != nil {
		logger.SetLevel(level.logrusLevel())
	}
}

// GetLevel returns the current logging level
func GetLevel() LogLevel {
	return currentLevel
}

// Close closes the log file if open
func Close() error {
	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

func enabled(level LogLevel) bool {
	return logger != nil && currentLevel != LevelOff && level >= currentLevel
}

func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		logger.Debugf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		logger.Infof(format, args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		logger.Warnf(format, args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		logger.Errorf(format, args...)
	}
}

// FieldLogger attaches structured fields to every message.
type FieldLogger struct {
	fields logrus.Fields
}

// WithFields returns a new logger with the specified fields
func WithFields(fields map[string]any) *FieldLogger {
	return &FieldLogger{fields: logrus.Fields(fields)}
}

// With returns a copy of fl with one more field.
func (fl *FieldLogger) With(key string, value any) *FieldLogger {
	fields := make(logrus.Fields, len(fl.fields)+1)
	for k, v := range fl.fields {
		fields[k] = v
	}
	fields[key] = value
	return &FieldLogger{fields: fields}
}

func (fl *FieldLogger) entry() *logrus.Entry {
	return logger.WithFields(fl.fields)
}

func (fl *FieldLogger) Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		fl.entry().Debugf(format, args...)
	}
}

func (fl *FieldLogger) Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		fl.entry().Infof(format, args...)
	}
}

func (fl *FieldLogger) Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		fl.entry().Warnf(format, args...)
	}
}

func (fl *FieldLogger) Errorf(format string, args ...any) {
	if enabled(LevelError) {
		fl.entry().Errorf(format, args...)
	}
}
