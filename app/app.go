// Package app wires the HAL to the touch sampler, macro store, HID link,
// painter and UI state machine, and runs them on the kernel's event loop.
package app

import (
	"context"
	"errors"
	"time"

	"macropad/hal"
	"macropad/kernel"
	"macropad/render"
	"macropad/services/hid"
	"macropad/services/logger"
	"macropad/services/store"
	"macropad/services/touch"
	"macropad/ui"
)

const (
	touchPeriodMS = 10
	tickPeriodMS  = 100
)

type Config struct {
	UI       ui.Config
	Debounce time.Duration
	LogLevel hal.LogLevel
}

func DefaultConfig() Config {
	return Config{
		UI:       ui.DefaultConfig(),
		Debounce: touch.DefaultDebounce,
		LogLevel: hal.LogInfo,
	}
}

// App is one running keypad.
type App struct {
	h   hal.HAL
	log *logger.Logger

	sys     *kernel.System
	sampler *touch.Sampler
	painter *render.Painter
	m       *ui.Machine

	fault  error
	cancel context.CancelFunc
}

// New builds the keypad on h. Flash that cannot hold the macros is logged
// and replaced by a RAM store.
func New(h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	if err := cfg.UI.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(h.Logger(), "macropad")
	log.SetLevel(cfg.LogLevel)

	var st store.Store
	if fs, err := store.NewFlashStore(h.Flash()); err != nil {
		log.Warnf("macro flash unavailable (%v), keeping macros in RAM", err)
		st = store.NewMemStore()
	} else {
		st = fs
	}

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb == nil {
		return nil, errors.New("app: no framebuffer")
	}
	painter := render.NewPainter(render.NewFramebufferSurface(fb))

	var panel hal.TouchPanel
	if in := h.Input(); in != nil {
		panel = in.Touch()
	}

	a := &App{
		h:       h,
		log:     log,
		sys:     kernel.NewSystem(),
		sampler: touch.NewSampler(panel, cfg.Debounce),
		painter: painter,
	}
	tx := hid.NewTransmitter(h.Link(), log.With("hid"))
	a.m = ui.New(cfg.UI, painter, st, tx, log.With("ui"))

	a.sys.Every(touchPeriodMS, a.pollTouch)
	a.sys.Every(tickPeriodMS, func(now uint64) {
		a.sys.Post(kernel.Event{Kind: kernel.EventTick, Now: now})
	})
	return a, nil
}

// Machine exposes the UI state machine. Only safe to inspect once Run has
// returned.
func (a *App) Machine() *ui.Machine { return a.m }

func (a *App) pollTouch(now uint64) {
	rel, ok := a.sampler.Poll(now)
	if !ok {
		return
	}
	ev := kernel.Event{Kind: kernel.EventTouch, X: rel.X, Y: rel.Y, Held: rel.Held, Now: now}
	if !a.sys.Post(ev) {
		a.log.Warnf("event queue full, dropped touch at (%d,%d)", rel.X, rel.Y)
	}
}

// Run drives the keypad until ctx is done or the UI faults.
func (a *App) Run(ctx context.Context) error {
	t := a.h.Time()
	if t == nil || t.Ticks() == nil {
		return errors.New("app: no tick source")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.cancel = cancel

	go a.feed(ctx, t.Ticks())

	a.log.Infof("starting")
	a.m.Start(a.sys.Now())
	err := a.sys.Run(ctx, a.handle)
	if a.fault != nil {
		return a.fault
	}
	return err
}

// feed turns the HAL tick stream into kernel time. Periodic tasks run here.
func (a *App) feed(ctx context.Context, ticks <-chan uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case seq, ok := <-ticks:
			if !ok {
				return
			}
			a.sys.TickTo(seq)
		}
	}
}

func (a *App) handle(ev kernel.Event) {
	defer a.recoverFault()

	switch ev.Kind {
	case kernel.EventTouch:
		a.log.Debugf("touch (%d,%d) held %v", ev.X, ev.Y, ev.Held)
		a.m.OnTouchRelease(ev.X, ev.Y, ev.Held, ev.Now)
	case kernel.EventTick:
		a.m.OnTick(ev.Now)
	}
}

// Run builds the keypad on h and runs it forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	a, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("macropad: " + err.Error())
		}
		select {}
	}
	if err := a.Run(context.Background()); err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("macropad: " + err.Error())
		}
	}
	select {}
}
