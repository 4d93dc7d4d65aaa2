// Package logger provides the logging collaborator for the freemap
// library. Messages go to stderr by default; the embedding application
// can redirect the output and raise or lower the severity threshold.
// Integrity warnings (dangling arrow links, duplicate attribute names)
// are reported here and never raised as errors.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a message severity.
type Level int

// Severities, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level tag used in output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps a level name to a Level. Unknown names report false
// and leave the caller's threshold unchanged.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warning", "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

var (
	mu     sync.RWMutex
	minLvl Level     = LevelInfo
	output io.Writer = os.Stderr
)

// SetLevel sets the minimum severity that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLvl = l
}

// SetOutput sets the output writer. Defaults to os.Stderr.
// Useful for testing and for embedding applications.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func log(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < minLvl {
		return
	}
	fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
}

// Debug prints a debug message if the threshold allows it.
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info prints an informational message if the threshold allows it.
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn prints a warning message if the threshold allows it.
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error prints an error message if the threshold allows it.
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}
