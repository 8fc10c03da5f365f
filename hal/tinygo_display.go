//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

// lcdFramebuffer keeps a little-endian RGB565 frame in RAM and pushes it to
// the ILI9341 row by row on Present.
type lcdFramebuffer struct {
	dev    *ili9341.Device
	w, h   int
	buf    []byte
	rowBuf []byte
}

func newLCDFramebuffer() (*lcdFramebuffer, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP16,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	dev := ili9341.NewSPI(spi, machine.GP20, machine.GP17, machine.GP21)
	dev.Configure(ili9341.Config{})
	dev.SetRotation(ili9341.Rotation90)

	w, h := dev.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.New("ili9341: bad size")
	}
	return &lcdFramebuffer{
		dev:    dev,
		w:      int(w),
		h:      int(h),
		buf:    make([]byte, int(w)*int(h)*2),
		rowBuf: make([]byte, int(w)*2),
	}, nil
}

func (f *lcdFramebuffer) Width() int          { return f.w }
func (f *lcdFramebuffer) Height() int         { return f.h }
func (f *lcdFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *lcdFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *lcdFramebuffer) Buffer() []byte      { return f.buf }

func (f *lcdFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, RGB565(r, g, b))
}

func (f *lcdFramebuffer) Present() error {
	stride := f.w * 2
	for y := 0; y < f.h; y++ {
		src := f.buf[y*stride : (y+1)*stride]
		// The panel wants big-endian pixels.
		for i := 0; i < stride; i += 2 {
			f.rowBuf[i] = src[i+1]
			f.rowBuf[i+1] = src[i]
		}
		if err := f.dev.DrawRGBBitmap8(0, int16(y), f.rowBuf, int16(f.w), 1); err != nil {
			return err
		}
	}
	return nil
}
