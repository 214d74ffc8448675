// Package logging is a small leveled logger over the standard log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelInfo, nil
	}
	l, ok := levelNames[s]
	if !ok {
		return LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
	return l, nil
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// Logger writes "[LEVEL] message" lines at or above its level.
type Logger struct {
	level int32
	base  *log.Logger
}

// New returns a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level: int32(level),
		base:  log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
}

// Default returns an info logger on stderr.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

// SetLevel changes the level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreInt32(&l.level, int32(level))
}

// Level returns the current level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadInt32(&l.level))
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.Level() <= level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	// Only format when there are args so literal % in a message survives.
	if len(args) == 0 {
		l.base.Printf("[%s] %s", level, format)
		return
	}
	l.base.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, a ...interface{}) { l.logf(LevelDebug, format, a...) }
func (l *Logger) Infof(format string, a ...interface{})  { l.logf(LevelInfo, format, a...) }
func (l *Logger) Warnf(format string, a ...interface{})  { l.logf(LevelWarn, format, a...) }
func (l *Logger) Errorf(format string, a ...interface{}) { l.logf(LevelError, format, a...) }

// TimeTrack logs at debug level how long a phase took since start.
func (l *Logger) TimeTrack(start time.Time, label string) {
	l.Debugf("%s took %s", label, time.Since(start))
}
