//go:build !tinygo

package hal

import (
	"fmt"
	"os"
)

// HostConfig selects the resources backing the host HAL.
type HostConfig struct {
	Width  int
	Height int

	// FlashPath is the backing file for the emulated NOR flash. Empty means
	// $MACROPAD_FLASH_PATH, then "macropad.flash".
	FlashPath string
	FlashSize uint32

	// LogLevel is one of debug, info, warn, error, off. Empty means
	// $MACROPAD_LOG_LEVEL, then info.
	LogLevel string

	// Serial, when set, names a serial port with a UART HID bridge attached.
	Serial string
	Baud   int

	// Connected is the pairing state reported by the loopback link used
	// when no serial bridge is configured.
	Connected bool
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	touch  *hostTouch
	t      *hostTime
	flash  *FileFlash
	link   Link
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	return newHost(cfg)
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	if cfg.FlashPath == "" {
		cfg.FlashPath = os.Getenv("MACROPAD_FLASH_PATH")
	}
	if cfg.FlashPath == "" {
		cfg.FlashPath = hostFlashDefaultPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv(LogLevelEnvVar)
	}

	logger, err := newHostLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	flash, err := OpenFlashFile(cfg.FlashPath, cfg.FlashSize)
	if err != nil {
		return nil, fmt.Errorf("host flash: %w", err)
	}

	var link Link
	if cfg.Serial != "" {
		sl, err := openSerialLink(cfg.Serial, cfg.Baud)
		if err != nil {
			_ = flash.Close()
			return nil, fmt.Errorf("host link: %w", err)
		}
		link = sl
	} else {
		link = &loopbackLink{logger: logger, connected: cfg.Connected}
	}

	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		touch:  &hostTouch{},
		t:      newHostTime(),
		flash:  flash,
		link:   link,
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{touch: h.touch} }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Link() Link       { return h.link }

func (h *hostHAL) close() {
	h.logger.sync()
	_ = h.flash.Close()
	if c, ok := h.link.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	touch *hostTouch
}

func (in hostInput) Touch() TouchPanel { return in.touch }
