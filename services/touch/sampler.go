// Package touch turns raw touch panel samples into debounced releases.
package touch

import (
	"time"

	"macropad/hal"
)

const (
	// PollInterval is how often the sampler expects Poll to be called.
	PollInterval = 10 * time.Millisecond
	// DefaultDebounce is how long a contact change must hold before it counts.
	DefaultDebounce = 20 * time.Millisecond
)

// Release is one completed touch.
type Release struct {
	X, Y int16
	Held time.Duration
}

// Sampler debounces a hal.TouchPanel. It is not safe for concurrent use;
// one periodic task owns it.
type Sampler struct {
	panel    hal.TouchPanel
	debounce uint64

	stable    bool
	candidate bool
	since     uint64
	downAt    uint64

	x, y int16
}

func NewSampler(panel hal.TouchPanel, debounce time.Duration) *Sampler {
	if debounce < 0 {
		debounce = 0
	}
	return &Sampler{panel: panel, debounce: uint64(debounce / time.Millisecond)}
}

// Pressed reports the debounced contact state.
func (s *Sampler) Pressed() bool { return s.stable }

// Poll reads the panel at now (milliseconds) and reports a Release when a
// debounced touch-up completes. Durations are measured between the first
// samples of the accepted down and up states, so the debounce delay cancels
// out. Coordinates are passed through as read.
func (s *Sampler) Poll(now uint64) (Release, bool) {
	if s.panel == nil {
		return Release{}, false
	}
	raw := s.panel.Read()

	if raw.Pressed != s.candidate {
		s.candidate = raw.Pressed
		s.since = now
	}
	if s.stable && raw.Pressed {
		s.x, s.y = raw.X, raw.Y
	}
	if s.candidate == s.stable || now-s.since < s.debounce {
		return Release{}, false
	}

	s.stable = s.candidate
	if s.stable {
		s.downAt = s.since
		s.x, s.y = raw.X, raw.Y
		return Release{}, false
	}

	held := time.Duration(s.since-s.downAt) * time.Millisecond
	return Release{X: s.x, Y: s.y, Held: held}, true
}
