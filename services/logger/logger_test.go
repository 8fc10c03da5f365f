package logger

import (
	"testing"

	"macropad/hal"
)

type lineSink struct {
	lines []string
}

func (s *lineSink) WriteLineString(line string) { s.lines = append(s.lines, line) }
func (s *lineSink) WriteLineBytes(b []byte)     { s.lines = append(s.lines, string(b)) }

type levelRecord struct {
	level hal.LogLevel
	tag   string
	msg   string
}

type levelSink struct {
	lineSink
	recs []levelRecord
}

func (s *levelSink) WriteLevel(level hal.LogLevel, tag, msg string) {
	s.recs = append(s.recs, levelRecord{level, tag, msg})
}

func TestLoggerLinePrefix(t *testing.T) {
	sink := &lineSink{}
	l := New(sink, "ui")

	l.Infof("mode %s", "playback")
	l.With("store").Warnf("slot %d missing", 2)

	want := []string{"I ui: mode playback", "W store: slot 2 missing"}
	if len(sink.lines) != len(want) {
		t.Fatalf("lines = %q, want %q", sink.lines, want)
	}
	for i := range want {
		if sink.lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, sink.lines[i], want[i])
		}
	}
}

func TestLoggerLevelSinkGetsFields(t *testing.T) {
	sink := &levelSink{}
	l := New(sink, "hid")

	l.Errorf("write: %v", "boom")

	if len(sink.lines) != 0 {
		t.Fatalf("plain lines = %q, want none", sink.lines)
	}
	if len(sink.recs) != 1 {
		t.Fatalf("records = %+v, want 1", sink.recs)
	}
	r := sink.recs[0]
	if r.level != hal.LogError || r.tag != "hid" || r.msg != "write: boom" {
		t.Fatalf("record = %+v", r)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	sink := &lineSink{}
	l := New(sink, "t")
	l.SetLevel(hal.LogWarn)

	l.Debugf("a")
	l.Infof("b")
	l.Warnf("c")

	if len(sink.lines) != 1 || sink.lines[0] != "W t: c" {
		t.Fatalf("lines = %q", sink.lines)
	}
}

func TestLoggerNilSafe(t *testing.T) {
	var l *Logger
	l.Infof("nothing")
	if l.With("x") != nil {
		t.Fatalf("With() on nil logger returned non-nil")
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 40, "short"},
		{"0123456789", 4, "0123..."},
		{"exact", 5, "exact"},
		{"any", 0, "any"},
	}
	for _, tc := range cases {
		if got := Clip(tc.in, tc.n); got != tc.want {
			t.Errorf("Clip(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
