// Package ui is the touch-driven state machine of the keypad: playback
// with arm-then-confirm, macro selection for editing, the on-screen
// keyboard and the link maintenance screen.
package ui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"macropad/services/logger"
	"macropad/services/store"
)

// Renderer draws primitives. Nothing is expected on the panel before Flush.
type Renderer interface {
	FillScreen(c color.RGBA)
	FillRect(x, y, w, h int, c color.RGBA)
	DrawButton(x, y, w, h int, c color.RGBA, label string)
	DrawPanel(x, y, w, h int, lines []string)
	Flush() error
}

// Transmitter types text into the paired host.
type Transmitter interface {
	Connected() bool
	Send(text string) error
}

// DefaultText is the text of a slot that holds nothing.
func DefaultText(slot int) string {
	return fmt.Sprintf("Macro %d", slot+1)
}

type buttonID uint8

const (
	btnMacro0 buttonID = iota
	btnMacro1
	btnMacro2
	btnMacro3
	btnConfirm
	btnBack
	btnClear
	btnPage
	btnShift
	btnSpace
	btnBackspace
	btnSave
	btnKeyGrid
)

type button struct {
	id buttonID
	r  Rect
}

// Machine owns all UI state. It is not safe for concurrent use: a single
// goroutine must deliver Start, OnTouchRelease and OnTick.
type Machine struct {
	cfg Config
	r   Renderer
	st  store.Store
	tx  Transmitter
	log *logger.Logger

	slots  [store.Slots]string
	screen screen

	// buttons is the geometry of the last draw; hit tests run against it.
	buttons []button

	linkShown bool
	draws     int
}

func New(cfg Config, r Renderer, st store.Store, tx Transmitter, log *logger.Logger) *Machine {
	m := &Machine{cfg: cfg, r: r, st: st, tx: tx, log: log}
	for i := range m.slots {
		m.slots[i] = DefaultText(i)
	}
	return m
}

// Start loads the macros and draws the first screen.
func (m *Machine) Start(now uint64) {
	m.loadSlots()
	if m.cfg.DisplayTest {
		m.setScreen(&displayTestScreen{started: now})
		return
	}
	m.setScreen(newPlayback())
}

// OnTouchRelease handles one completed touch at (x, y) held for held.
func (m *Machine) OnTouchRelease(x, y int16, held time.Duration, now uint64) {
	if m.screen == nil {
		return
	}
	m.screen.release(m, touch{x: int(x), y: int(y), held: held, now: now})
}

// OnTick runs the time-driven checks.
func (m *Machine) OnTick(now uint64) {
	if m.screen == nil {
		return
	}
	m.screen.tick(m, now)
}

// Mode reports the active screen.
func (m *Machine) Mode() Mode {
	if m.screen == nil {
		return ModePlayback
	}
	return m.screen.mode()
}

// Armed reports the armed slot in playback.
func (m *Machine) Armed() (slot int, ok bool) {
	if p, isPlayback := m.screen.(*playbackScreen); isPlayback && p.armed >= 0 {
		return p.armed, true
	}
	return -1, false
}

// Slot returns the cached text of a slot.
func (m *Machine) Slot(i int) string {
	if i < 0 || i >= store.Slots {
		return ""
	}
	return m.slots[i]
}

// Editing reports the slot, text and page of the keyboard screen.
func (m *Machine) Editing() (slot int, text string, page Page, ok bool) {
	k, isKeyboard := m.screen.(*keyboardScreen)
	if !isKeyboard {
		return -1, "", PageLower, false
	}
	return k.slot, k.buf.String(), k.page, true
}

// Notice returns the acknowledgment shown on the playback title bar.
func (m *Machine) Notice() string {
	if p, ok := m.screen.(*playbackScreen); ok {
		return p.notice
	}
	return ""
}

// Draws counts completed redraws.
func (m *Machine) Draws() int { return m.draws }

func (m *Machine) loadSlots() {
	for i := range m.slots {
		text, err := m.st.Get(i)
		switch {
		case errors.Is(err, store.ErrNotFound):
			m.log.Warnf("%s not found, using default", store.Key(i))
			text = DefaultText(i)
		case err != nil:
			m.log.Errorf("read %s: %v", store.Key(i), err)
			text = DefaultText(i)
		default:
			m.log.Infof("loaded %s: %q", store.Key(i), logger.Clip(text, 40))
		}
		m.slots[i] = text
	}
}

func (m *Machine) setScreen(s screen) {
	if m.screen == nil || m.screen.mode() != s.mode() {
		m.log.Infof("mode %s", s.mode())
	}
	m.screen = s
	m.redraw()
}

// redraw repaints the whole active screen and rebuilds its hit geometry.
func (m *Machine) redraw() {
	m.buttons = m.buttons[:0]
	m.linkShown = m.connected()
	m.screen.draw(m)
	if err := m.r.Flush(); err != nil {
		m.log.Errorf("flush: %v", err)
	}
	m.draws++
}

func (m *Machine) addButton(id buttonID, r Rect, c color.RGBA, label string) {
	m.buttons = append(m.buttons, button{id: id, r: r})
	m.r.DrawButton(r.X, r.Y, r.W, r.H, c, label)
}

// hit returns the first button of the last draw containing (x, y).
func (m *Machine) hit(x, y int) (buttonID, bool) {
	for _, b := range m.buttons {
		if b.r.Contains(x, y) {
			return b.id, true
		}
	}
	return 0, false
}

func (m *Machine) connected() bool {
	return m.tx != nil && m.tx.Connected()
}

func (m *Machine) send(slot int) {
	text := m.slots[slot]
	if !m.connected() {
		m.log.Warnf("link not connected, dropping %s", store.Key(slot))
		return
	}
	m.log.Infof("sending %s: %q", store.Key(slot), logger.Clip(text, 40))
	if err := m.tx.Send(text); err != nil {
		m.log.Errorf("send %s: %v", store.Key(slot), err)
	}
}

func (m *Machine) save(slot int, text string) {
	if err := m.st.Set(slot, text); err != nil {
		m.log.Errorf("save %s: %v (edit discarded)", store.Key(slot), err)
		return
	}
	m.log.Infof("saved %s", store.Key(slot))
	m.slots[slot] = text
}

func (m *Machine) eraseAll() {
	if err := m.st.EraseAll(); err != nil {
		m.log.Errorf("erase stored data: %v", err)
	} else {
		m.log.Infof("stored data erased")
	}
	m.loadSlots()
}
