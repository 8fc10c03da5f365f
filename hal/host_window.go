//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"
	"macropad/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays the framebuffer and turns
// the left mouse button (or the first touchscreen contact) into touch
// samples. start runs on its own goroutine with a context that is cancelled
// when the window closes. RunWindow blocks until the window closes or start
// returns.
func RunWindow(cfg HostConfig, start func(ctx context.Context, h HAL) error) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- start(ctx, h) }()

	g := &hostGame{h: h, done: done}
	ebiten.SetWindowTitle("MacroPad (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(100)
	err = ebiten.RunGame(g)
	cancel()
	if g.startErr != nil {
		return g.startErr
	}
	return err
}

type hostGame struct {
	h        *hostHAL
	done     <-chan error
	startErr error

	img      *image.RGBA
	fbImg    *ebiten.Image
	scratch  []byte
	presents uint64
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		if err != nil && !errors.Is(err, context.Canceled) {
			g.startErr = err
		}
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.h.touch.set(pointerSample())
	g.h.t.step()
	return nil
}

func pointerSample() TouchSample {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return TouchSample{Pressed: true, X: int16(x), Y: int16(y)}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return TouchSample{Pressed: true, X: int16(x), Y: int16(y)}
	}
	return TouchSample{}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	if n := fb.snapshotRGB565(g.scratch); n != g.presents {
		g.presents = n
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := RGB888(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
