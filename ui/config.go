package ui

import (
	"errors"
	"time"

	"macropad/services/store"
)

// Config holds the UI timing and geometry.
type Config struct {
	Width  int
	Height int

	// Playback press classification.
	IgnoreBelow     time.Duration
	ConfigHold      time.Duration
	MaintenanceHold time.Duration

	// SelectionTimeout clears an armed macro once strictly exceeded.
	SelectionTimeout time.Duration
	// NoticeDuration is how long acknowledgments stay on the playback title bar.
	NoticeDuration time.Duration

	// DisplayTest shows colour bars at start for DisplayTestDuration.
	DisplayTest         bool
	DisplayTestDuration time.Duration

	// EditCapacity bounds the edit buffer in bytes.
	EditCapacity int
}

func DefaultConfig() Config {
	return Config{
		Width:               320,
		Height:              240,
		IgnoreBelow:         100 * time.Millisecond,
		ConfigHold:          5000 * time.Millisecond,
		MaintenanceHold:     10000 * time.Millisecond,
		SelectionTimeout:    5000 * time.Millisecond,
		NoticeDuration:      1500 * time.Millisecond,
		DisplayTestDuration: 2000 * time.Millisecond,
		EditCapacity:        store.MaxTextLen,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width < minWidth || c.Height < minHeight:
		return errors.New("ui: screen smaller than 240x200")
	case c.IgnoreBelow < 0:
		return errors.New("ui: negative ignore threshold")
	case c.ConfigHold <= c.IgnoreBelow:
		return errors.New("ui: config hold must exceed the ignore threshold")
	case c.MaintenanceHold <= c.ConfigHold:
		return errors.New("ui: maintenance hold must exceed config hold")
	case c.SelectionTimeout <= 0:
		return errors.New("ui: selection timeout must be positive")
	case c.EditCapacity <= 0 || c.EditCapacity > store.MaxTextLen:
		return errors.New("ui: edit capacity out of range")
	}
	return nil
}

func ms(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
