package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LogLevel is the severity attached to a structured log line.
type LogLevel uint8

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// LevelLogger is a Logger that keeps level and tag as structured fields
// instead of folding them into the line.
type LevelLogger interface {
	Logger
	WriteLevel(level LogLevel, tag, msg string)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// TouchSample is one reading of the touch panel, mapped to screen
// coordinates. X and Y are only meaningful while Pressed is set.
type TouchSample struct {
	Pressed bool
	X       int16
	Y       int16
}

// TouchPanel is a raw (not debounced) touch source.
type TouchPanel interface {
	Read() TouchSample
}

// Input provides access to input devices (if available).
type Input interface {
	Touch() TouchPanel
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only. Writes
// may only clear bits; setting bits back requires an Erase.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides a base tick stream (1 tick = 1 ms).
type Time interface {
	Ticks() <-chan uint64
}

// Link is the keyboard-emulation link to the paired host. Reports are
// 8-byte boot keyboard reports.
type Link interface {
	Connected() bool
	WriteReport(report []byte) error
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Flash() Flash
	Time() Time
	Link() Link
}
