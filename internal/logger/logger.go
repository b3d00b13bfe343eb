// Package logger provides levelled logging on top of the standard log
// package, with optional size-rotated file output.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message.
type LogLevel string

const (
	Debug LogLevel = "DEBUG"
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

var (
	mu         sync.Mutex
	minLevel   = Info
	fileLogger *lumberjack.Logger
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0) // timestamp is written by Log
}

// levelPriority returns the numeric priority of a log level (higher = more severe)
func levelPriority(level LogLevel) int {
	switch level {
	case Debug:
		return 0
	case Info:
		return 1
	case Warn:
		return 2
	case Error:
		return 3
	default:
		return 1
	}
}

// SetLevel sets the minimum log level. Valid values: "debug", "info", "warn", "error".
// Anything else selects info.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	switch level {
	case "debug":
		minLevel = Debug
	case "warn":
		minLevel = Warn
	case "error":
		minLevel = Error
	default:
		minLevel = Info
	}
}

// Level returns the current minimum level.
func Level() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Init adds a rotating log file next to stdout. An empty path keeps stdout only.
func Init(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	mu.Lock()
	fileLogger = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes; SD cards are small
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	mu.Unlock()

	log.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileLogger == nil {
		return nil
	}
	err := fileLogger.Close()
	fileLogger = nil
	log.SetOutput(os.Stdout)
	return err
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Log writes a formatted message at the specified level.
// Format: timestamp [LEVEL] message
func Log(level LogLevel, format string, v ...interface{}) {
	if levelPriority(level) < levelPriority(Level()) {
		return
	}
	msg := fmt.Sprintf(format, v...)
	log.Printf("%s [%s] %s", time.Now().Format(time.RFC3339), level, msg)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, v ...interface{}) {
	Log(Debug, format, v...)
}

// Infof logs a formatted message at INFO level.
func Infof(format string, v ...interface{}) {
	Log(Info, format, v...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, v ...interface{}) {
	Log(Warn, format, v...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, v ...interface{}) {
	Log(Error, format, v...)
}
