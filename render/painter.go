package render

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight = 10
	fontOffset = 6
	ellipsis   = "..."
)

var (
	colorBlack  = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorWhite  = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorBorder = color.RGBA{0x20, 0x20, 0x20, 0xFF}
)

// Painter draws screen primitives onto a Surface. Nothing reaches the panel
// until Flush.
type Painter struct {
	s    Surface
	font *tinyfont.Font
}

func NewPainter(s Surface) *Painter {
	return &Painter{s: s, font: &proggy.TinySZ8pt7b}
}

func (p *Painter) FillScreen(c color.RGBA) {
	w, h := p.s.Size()
	_ = p.s.FillRectangle(0, 0, w, h, c)
}

func (p *Painter) FillRect(x, y, w, h int, c color.RGBA) {
	_ = p.s.FillRectangle(int16(x), int16(y), int16(w), int16(h), c)
}

// DrawButton fills the rectangle, outlines it and centres label inside it,
// cutting the label short with "..." when it does not fit.
func (p *Painter) DrawButton(x, y, w, h int, c color.RGBA, label string) {
	p.FillRect(x, y, w, h, c)
	p.outline(x, y, w, h, colorBorder)

	label = fitLabel(p.font, printable(label), w-6)
	if label == "" {
		return
	}
	lw, _ := tinyfont.LineWidth(p.font, label)
	tx := x + (w-int(lw))/2
	ty := y + (h-fontHeight)/2 + fontOffset
	tinyfont.WriteLine(p.s, p.font, int16(tx), int16(ty), label, textColor(c))
}

// DrawPanel renders lines as a small terminal clipped to the rectangle.
func (p *Painter) DrawPanel(x, y, w, h int, lines []string) {
	p.FillRect(x, y, w, h, colorBlack)
	if w <= 0 || h < fontHeight {
		return
	}

	t := tinyterm.NewTerminal(panelDisplay{base: p.s, x: int16(x), y: int16(y), w: int16(w), h: int16(h)})
	t.Configure(&tinyterm.Config{
		Font:       p.font,
		FontHeight: fontHeight,
		FontOffset: fontOffset,
	})
	for i, line := range lines {
		if i >= h/fontHeight {
			break
		}
		if i > 0 {
			_, _ = t.Write([]byte("\r\n"))
		}
		_, _ = t.Write([]byte(printable(line)))
	}
}

// Flush presents everything drawn since the last Flush.
func (p *Painter) Flush() error {
	return p.s.Display()
}

func (p *Painter) outline(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	p.FillRect(x, y, w, 1, c)
	p.FillRect(x, y+h-1, w, 1, c)
	p.FillRect(x, y, 1, h, c)
	p.FillRect(x+w-1, y, 1, h, c)
}

// textColor picks black or white, whichever reads better on bg.
func textColor(bg color.RGBA) color.RGBA {
	lum := 299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)
	if lum > 128*1000 {
		return colorBlack
	}
	return colorWhite
}

// printable flattens control characters so multi-line macros fit on one
// label line.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return ' '
		}
		return r
	}, s)
}

func fitLabel(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if w, _ := tinyfont.LineWidth(f, s); int(w) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if w, _ := tinyfont.LineWidth(f, string(r)+ellipsis); int(w) <= maxW {
			return string(r) + ellipsis
		}
	}
	return ""
}
