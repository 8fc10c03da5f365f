//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	touch  TouchPanel
	t      *tinyGoTime
	flash  Flash
	link   Link
}

// New returns the Raspberry Pi Pico (RP2040) HAL.
//
// UART0 GP0/GP1 115200 8N1: log console.
// UART1 GP4/GP5 9600 8N1: EZ-Key HID bridge, paired status on GP15.
// SPI0 GP18/GP19/GP16, DC GP20, CS GP17, RST GP21: ILI9341 320x240.
// SPI1 GP10/GP11/GP12, CS GP13, IRQ GP14: XPT2046 touch.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var fb Framebuffer = &stubFramebuffer{w: 320, h: 240}
	if lcd, err := newLCDFramebuffer(); err != nil {
		logger.WriteLineString("hal: display: " + err.Error())
	} else {
		fb = lcd
	}

	var touch TouchPanel = releasedTouch{}
	if tp, err := newXPT2046(); err != nil {
		logger.WriteLineString("hal: touch: " + err.Error())
	} else {
		touch = tp
	}

	return &tinyGoHAL{
		logger: logger,
		fb:     fb,
		touch:  touch,
		t:      newTinyGoTime(),
		flash:  newRP2Flash(),
		link:   newEZKeyLink(machine.UART1, machine.GP4, machine.GP5, machine.GP15),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{touch: h.touch} }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Link() Link       { return h.link }
