//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Raw XPT2046 readings at the panel edges, landscape orientation.
const (
	touchRawXMin = 200
	touchRawXMax = 3900
	touchRawYMin = 200
	touchRawYMax = 3900

	touchPressureMin = 400
)

type xpt2046 struct {
	bus *machine.SPI
	cs  machine.Pin
	irq machine.Pin

	w, h int
}

func newXPT2046() (*xpt2046, error) {
	bus := machine.SPI1
	if err := bus.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 2_000_000,
	}); err != nil {
		return nil, err
	}

	d := &xpt2046{bus: bus, cs: machine.GP13, irq: machine.GP14, w: 320, h: 240}
	d.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.cs.High()
	d.irq.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return d, nil
}

func (d *xpt2046) Read() TouchSample {
	// PENIRQ is active low.
	if d.irq.Get() {
		return TouchSample{}
	}

	z1 := int(d.readReg(0xB1))
	z2 := int(d.readReg(0xC1))
	if z1+4095-z2 < touchPressureMin {
		return TouchSample{}
	}

	rx := int(d.readReg(0xD1))
	ry := int(d.readReg(0x91))
	return TouchSample{
		Pressed: true,
		X:       int16(scaleTouch(rx, touchRawXMin, touchRawXMax, d.w)),
		Y:       int16(scaleTouch(ry, touchRawYMin, touchRawYMax, d.h)),
	}
}

func (d *xpt2046) readReg(cmd byte) uint16 {
	d.cs.Low()
	d.bus.Transfer(cmd)
	b1, _ := d.bus.Transfer(0x00)
	b2, _ := d.bus.Transfer(0x00)
	d.cs.High()
	return ((uint16(b1) << 8) | uint16(b2)) >> 3
}

// scaleTouch maps a raw reading onto [0, span). Readings outside the
// calibrated window land outside the screen and are left for the UI to
// ignore.
func scaleTouch(raw, lo, hi, span int) int {
	if hi <= lo {
		return raw
	}
	return (raw - lo) * span / (hi - lo)
}
