package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
)

var colorFault = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// recoverFault turns a panic in the UI loop into a fault screen and stops
// the loop.
func (a *App) recoverFault() {
	v := recover()
	if v == nil {
		return
	}

	stack := debug.Stack()
	a.log.Errorf("panic: %v", v)
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			a.log.Errorf("%s", line)
		}
	}

	lines := []string{"MacroPad fault", fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	a.painter.FillScreen(colorFault)
	if fb := a.h.Display().Framebuffer(); fb != nil {
		a.painter.DrawPanel(4, 4, fb.Width()-8, fb.Height()-8, lines)
	}
	_ = a.painter.Flush()

	a.fault = fmt.Errorf("app: ui panic: %v", v)
	if a.cancel != nil {
		a.cancel()
	}
}
