// Package render draws the keypad screens onto an RGB565 framebuffer.
package render

import (
	"image/color"

	"macropad/hal"

	"tinygo.org/x/drivers"
)

// Surface is a drivers.Displayer that can also fill rectangles.
type Surface interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// FramebufferSurface adapts a hal.Framebuffer to Surface. Display presents
// the frame.
type FramebufferSurface struct {
	fb hal.Framebuffer
}

func NewFramebufferSurface(fb hal.Framebuffer) *FramebufferSurface {
	return &FramebufferSurface{fb: fb}
}

func (d *FramebufferSurface) usable() []byte {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return d.fb.Buffer()
}

func (d *FramebufferSurface) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FramebufferSurface) SetPixel(x, y int16, c color.RGBA) {
	buf := d.usable()
	if buf == nil {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FramebufferSurface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.usable()
	if buf == nil {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *FramebufferSurface) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// panelDisplay exposes a rectangle of a Surface as a display of its own,
// clipping everything outside it. Scrolling and rotation are not supported.
type panelDisplay struct {
	base Surface
	x, y int16
	w, h int16
}

func (d panelDisplay) Size() (x, y int16) { return d.w, d.h }

func (d panelDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= d.w || y < 0 || y >= d.h {
		return
	}
	d.base.SetPixel(d.x+x, d.y+y, c)
}

func (d panelDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, int(d.w))
	y0 := clampInt(int(y), 0, int(d.h))
	x1 := clampInt(int(x)+int(width), 0, int(d.w))
	y1 := clampInt(int(y)+int(height), 0, int(d.h))
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	return d.base.FillRectangle(d.x+int16(x0), d.y+int16(y0), int16(x1-x0), int16(y1-y0), c)
}

func (d panelDisplay) Display() error { return nil }

func (d panelDisplay) SetScroll(line int16) {}

func (d panelDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
