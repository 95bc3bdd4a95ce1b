package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

var globalLogger atomic.Pointer[Logger]

func init() {
	l := NewDefault()
	if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
		l.SetLevel(level)
	}
	if format, ok := ParseFormat(os.Getenv("LOG_FORMAT")); ok {
		l.SetFormat(format)
	}
	globalLogger.Store(l)
}

// ParseLevel maps a level name such as "warn" or "WARNING" to a LogLevel
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat maps "json" or "text" to a LogFormat
func ParseFormat(format string) (LogFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return JSONFormat, false
	}
}

// Configure applies level and format names to the global logger
func Configure(level, format string) error {
	lvl, ok := ParseLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	fmtt, ok := ParseFormat(format)
	if !ok {
		return fmt.Errorf("unknown log format %q", format)
	}
	l := GetGlobalLogger()
	l.SetLevel(lvl)
	l.SetFormat(fmtt)
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger.Load()
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger.Store(logger)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(DEBUG, message, firstFields(fields), nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(INFO, message, firstFields(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(WARN, message, firstFields(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().log(ERROR, message, firstFields(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().log(FATAL, message, firstFields(fields), err)
}

func Debugf(format string, args ...interface{}) {
	GetGlobalLogger().log(DEBUG, fmt.Sprintf(format, args...), nil, nil)
}

func Infof(format string, args ...interface{}) {
	GetGlobalLogger().log(INFO, fmt.Sprintf(format, args...), nil, nil)
}

func Warnf(format string, args ...interface{}) {
	GetGlobalLogger().log(WARN, fmt.Sprintf(format, args...), nil, nil)
}

func Errorf(format string, args ...interface{}) {
	GetGlobalLogger().log(ERROR, fmt.Sprintf(format, args...), nil, nil)
}

func Fatalf(format string, args ...interface{}) {
	GetGlobalLogger().log(FATAL, fmt.Sprintf(format, args...), nil, nil)
}
