// Package logger is a small leveled, tagged logger over hal.Logger.
package logger

import (
	"fmt"

	"macropad/hal"
)

// Logger prefixes every line with its level and tag. A nil *Logger drops
// everything.
type Logger struct {
	sink  hal.Logger
	level hal.LevelLogger
	tag   string
	min   hal.LogLevel
}

func New(sink hal.Logger, tag string) *Logger {
	l := &Logger{sink: sink, tag: tag, min: hal.LogDebug}
	if lv, ok := sink.(hal.LevelLogger); ok {
		l.level = lv
	}
	return l
}

// With returns a logger sharing the sink under a different tag.
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.tag = tag
	return &c
}

// SetLevel drops lines below min.
func (l *Logger) SetLevel(min hal.LogLevel) {
	if l != nil {
		l.min = min
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(hal.LogDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(hal.LogInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(hal.LogWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(hal.LogError, format, args...) }

func (l *Logger) logf(lv hal.LogLevel, format string, args ...any) {
	if l == nil || l.sink == nil || lv < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.level != nil {
		l.level.WriteLevel(lv, l.tag, msg)
		return
	}
	l.sink.WriteLineString(levelLetter(lv) + " " + l.tag + ": " + msg)
}

func levelLetter(lv hal.LogLevel) string {
	switch lv {
	case hal.LogDebug:
		return "D"
	case hal.LogInfo:
		return "I"
	case hal.LogWarn:
		return "W"
	case hal.LogError:
		return "E"
	default:
		return "?"
	}
}

// Clip shortens s to at most n bytes, marking the cut with "...". It is used
// to keep macro text from flooding log lines.
func Clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
