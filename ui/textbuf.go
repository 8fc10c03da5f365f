package ui

import "unicode/utf8"

// TextBuffer is a byte buffer with a fixed capacity. Appends that would
// overflow are rejected whole.
type TextBuffer struct {
	b   []byte
	cap int
}

func NewTextBuffer(capacity int) *TextBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &TextBuffer{b: make([]byte, 0, capacity), cap: capacity}
}

func (t *TextBuffer) Len() int       { return len(t.b) }
func (t *TextBuffer) Cap() int       { return t.cap }
func (t *TextBuffer) Full() bool     { return len(t.b) >= t.cap }
func (t *TextBuffer) String() string { return string(t.b) }

// Append adds c, reporting false when there is no room.
func (t *TextBuffer) Append(c byte) bool {
	if t.Full() {
		return false
	}
	t.b = append(t.b, c)
	return true
}

// Backspace drops the last rune, reporting false when empty. An invalid
// trailing byte counts as one rune.
func (t *TextBuffer) Backspace() bool {
	if len(t.b) == 0 {
		return false
	}
	_, n := utf8.DecodeLastRune(t.b)
	t.b = t.b[:len(t.b)-n]
	return true
}

// Reset replaces the contents with s, truncated to capacity on a rune
// boundary.
func (t *TextBuffer) Reset(s string) {
	if len(s) > t.cap {
		cut := t.cap
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	t.b = append(t.b[:0], s...)
}
