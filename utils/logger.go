package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Logger provides leveled, printf-style logging throughout the application.
type Logger struct {
	min    Level
	prefix string
	out    *log.Logger
	err    *log.Logger
	color  bool
}

// NewLogger creates a Logger writing info and below to stdout and errors to stderr.
func NewLogger(min Level) *Logger {
	return &Logger{
		min:   min,
		out:   log.New(os.Stdout, "", 0),
		err:   log.New(os.Stderr, "", 0),
		color: true,
	}
}

// NewWriterLogger sends every level to w without color codes. Tests use it with io.Discard.
func NewWriterLogger(w io.Writer, min Level) *Logger {
	l := log.New(w, "", 0)
	return &Logger{min: min, out: l, err: l}
}

// With returns a copy whose messages are tagged with [component].
func (l *Logger) With(component string) *Logger {
	c := *l
	c.prefix = "[" + component + "] "
	return &c
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) tag(name, code string) string {
	if !l.color {
		return fmt.Sprintf("%-5s", name)
	}
	return fmt.Sprintf("\033[%sm%-5s\033[0m", code, name)
}

func (l *Logger) emit(level Level, dst *log.Logger, tag, format string, args ...any) {
	if level < l.min {
		return
	}
	dst.Printf("[%s] %s %s%s", l.timestamp(), tag, l.prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelDebug, l.out, l.tag("DEBUG", "36"), format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelInfo, l.out, l.tag("INFO", "32"), format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelWarn, l.out, l.tag("WARN", "33"), format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelError, l.err, l.tag("ERROR", "31"), format, args...)
}
