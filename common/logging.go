/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package common provides logging shared by every package in the module.
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Logger is the interface used for logging throughout the module.
type Logger interface {
	Error(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	IsLogLevel(level LogLevel) bool
}

// DummyLogger discards everything. It is the default logger so library code
// stays silent until a caller opts in.
type DummyLogger struct{}

func (DummyLogger) Error(format string, args ...interface{})   {}
func (DummyLogger) Warning(format string, args ...interface{}) {}
func (DummyLogger) Notice(format string, args ...interface{})  {}
func (DummyLogger) Info(format string, args ...interface{})    {}
func (DummyLogger) Debug(format string, args ...interface{})   {}
func (DummyLogger) Trace(format string, args ...interface{})   {}

// IsLogLevel always returns true for the dummy logger.
func (DummyLogger) IsLogLevel(level LogLevel) bool { return true }

// LogLevel is the verbosity level for logging.
type LogLevel int

// Log levels, lowest value is most important.
const (
	LogLevelTrace   LogLevel = 5
	LogLevelDebug   LogLevel = 4
	LogLevelInfo    LogLevel = 3
	LogLevelNotice  LogLevel = 2
	LogLevelWarning LogLevel = 1
	LogLevelError   LogLevel = 0
)

// ConsoleLogger writes to os.Stdout at or below its configured level.
type ConsoleLogger struct {
	LogLevel LogLevel
}

// NewConsoleLogger returns a ConsoleLogger at the given level.
func NewConsoleLogger(logLevel LogLevel) *ConsoleLogger {
	return &ConsoleLogger{LogLevel: logLevel}
}

// IsLogLevel reports whether level is enabled.
func (l ConsoleLogger) IsLogLevel(level LogLevel) bool { return l.LogLevel >= level }

func (l ConsoleLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		logToWriter(os.Stdout, "[ERROR] ", format, args...)
	}
}

func (l ConsoleLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		logToWriter(os.Stdout, "[WARNING] ", format, args...)
	}
}

func (l ConsoleLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		logToWriter(os.Stdout, "[NOTICE] ", format, args...)
	}
}

func (l ConsoleLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		logToWriter(os.Stdout, "[INFO] ", format, args...)
	}
}

func (l ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug {
		logToWriter(os.Stdout, "[DEBUG] ", format, args...)
	}
}

func (l ConsoleLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace {
		logToWriter(os.Stdout, "[TRACE] ", format, args...)
	}
}

// WriterLogger writes to an arbitrary io.Writer.
type WriterLogger struct {
	LogLevel LogLevel
	Output   io.Writer
}

// NewWriterLogger returns a WriterLogger at the given level.
func NewWriterLogger(logLevel LogLevel, w io.Writer) *WriterLogger {
	return &WriterLogger{LogLevel: logLevel, Output: w}
}

func (l WriterLogger) IsLogLevel(level LogLevel) bool { return l.LogLevel >= level }

func (l WriterLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		logToWriter(l.Output, "[ERROR] ", format, args...)
	}
}

func (l WriterLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		logToWriter(l.Output, "[WARNING] ", format, args...)
	}
}

func (l WriterLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		logToWriter(l.Output, "[NOTICE] ", format, args...)
	}
}

func (l WriterLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		logToWriter(l.Output, "[INFO] ", format, args...)
	}
}

func (l WriterLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug {
		logToWriter(l.Output, "[DEBUG] ", format, args...)
	}
}

func (l WriterLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace {
		logToWriter(l.Output, "[TRACE] ", format, args...)
	}
}

func logToWriter(f io.Writer, prefix, format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 0
	} else {
		file = filepath.Base(file)
	}
	src := fmt.Sprintf("%s%s:%d ", prefix, file, line) + format + "\n"
	fmt.Fprintf(f, src, args...)
}

// Log is the package-wide logger. Replace it with SetLogger.
var Log Logger = DummyLogger{}

// SetLogger installs logger as the module-wide logger.
func SetLogger(logger Logger) {
	Log = logger
}
