// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvVar names the environment variable holding the log level.
const EnvVar = "RESFILTER_LOG"

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger installs the compact handler on stderr and sets the level from
// RESFILTER_LOG. Reports go to stdout, so logs never mix into them.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv(EnvVar))
}

// InitLoggerTo is InitLogger with an explicit writer and level name.
func InitLoggerTo(w io.Writer, level string) {
	var apexLevel log.Level
	apexLevel, traceEnabled = ParseLevel(level)
	log.SetHandler(&CompactHandler{Writer: w})
	log.SetLevel(apexLevel)
}

// ParseLevel maps a level name to an apex level. "trace" maps to debug and
// reports trace=true. Unknown or empty names fall back to error.
func ParseLevel(name string) (level log.Level, trace bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.DebugLevel, true
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn", "warning":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	default:
		return log.ErrorLevel, false
	}
}

// CompactHandler writes one "timestamp level message" line per entry.
type CompactHandler struct {
	mu     sync.Mutex
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *CompactHandler) HandleLog(e *log.Entry) error {
	message, level := e.Message, levelLetter(e.Level)
	if strings.HasPrefix(message, tracePrefix) {
		message, level = message[len(tracePrefix):], "T"
	}

	// Fields are appended in name order so lines are stable.
	for _, name := range e.Fields.Names() {
		message += fmt.Sprintf(" %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.Writer, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	}
	return "?"
}

// Tracef logs below debug. It is a no-op unless the level is trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Error logs at Error level.
func Error(msg string) {
	log.Error(msg)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
