package ui

import (
	"fmt"
	"image/color"
	"time"

	"macropad/internal/buildinfo"
	"macropad/services/store"
)

var (
	colorBackground = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorTitle      = color.RGBA{0x10, 0x10, 0x10, 0xFF}
	colorMacro      = color.RGBA{0x00, 0x40, 0xA0, 0xFF}
	colorArmed      = color.RGBA{0x00, 0xA0, 0x40, 0xFF}
	colorConfirm    = color.RGBA{0xFF, 0xA4, 0x00, 0xFF}
	colorEdit       = color.RGBA{0x7B, 0x7D, 0x7B, 0xFF}
	colorKey        = color.RGBA{0x30, 0x30, 0x30, 0xFF}
	colorControl    = color.RGBA{0x00, 0x40, 0xA0, 0xFF}
	colorSave       = color.RGBA{0x00, 0xA0, 0x40, 0xFF}
	colorDanger     = color.RGBA{0xC0, 0x00, 0x00, 0xFF}
	colorNotice     = color.RGBA{0xFF, 0xA4, 0x00, 0xFF}
	colorPreview    = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

var testBars = []color.RGBA{
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF},
	{0x00, 0xFF, 0xFF, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF},
	{0xFF, 0x00, 0xFF, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0x00, 0x00, 0x00, 0xFF},
}

type touch struct {
	x, y int
	held time.Duration
	now  uint64
}

// screen is one mode together with the state only that mode owns.
type screen interface {
	mode() Mode
	release(m *Machine, t touch)
	tick(m *Machine, now uint64)
	draw(m *Machine)
}

func drawTitle(m *Machine, title string, c color.RGBA) {
	tb := m.cfg.titleBar()
	m.r.DrawButton(tb.X, tb.Y, tb.W, tb.H, c, title)
}

// displayTestScreen shows colour bars until touched or timed out.
type displayTestScreen struct {
	started uint64
}

func (s *displayTestScreen) mode() Mode { return ModeDisplayTest }

func (s *displayTestScreen) release(m *Machine, t touch) {
	m.setScreen(newPlayback())
}

func (s *displayTestScreen) tick(m *Machine, now uint64) {
	if now >= s.started && now-s.started >= ms(m.cfg.DisplayTestDuration) {
		m.setScreen(newPlayback())
	}
}

func (s *displayTestScreen) draw(m *Machine) {
	m.r.FillScreen(colorBackground)
	w := m.cfg.Width / len(testBars)
	for i, c := range testBars {
		m.r.FillRect(i*w, 0, w, m.cfg.Height, c)
	}
}

// playbackScreen is the main screen. armed is -1 when nothing is armed.
type playbackScreen struct {
	armed   int
	armedAt uint64

	notice      string
	noticeUntil uint64
}

func newPlayback() *playbackScreen { return &playbackScreen{armed: -1} }

func (s *playbackScreen) mode() Mode { return ModePlayback }

func (s *playbackScreen) disarm() {
	s.armed = -1
	s.armedAt = 0
}

func (s *playbackScreen) release(m *Machine, t touch) {
	switch {
	case t.held >= m.cfg.MaintenanceHold:
		s.disarm()
		m.setScreen(&maintenanceScreen{})
		return
	case t.held >= m.cfg.ConfigHold:
		s.disarm()
		m.setScreen(&configScreen{})
		return
	case t.held < m.cfg.IgnoreBelow:
		return
	}

	id, ok := m.hit(t.x, t.y)
	if ok && id == btnConfirm && s.armed >= 0 {
		slot := s.armed
		s.disarm()
		m.send(slot)
		m.redraw()
		return
	}
	if ok && id <= btnMacro3 {
		slot := int(id - btnMacro0)
		if slot == s.armed {
			m.log.Infof("%s deselected", store.Key(slot))
			s.disarm()
		} else {
			m.log.Infof("%s armed", store.Key(slot))
			s.armed = slot
			s.armedAt = t.now
		}
		m.redraw()
		return
	}
	if s.armed >= 0 {
		s.disarm()
		m.redraw()
	}
}

func (s *playbackScreen) tick(m *Machine, now uint64) {
	dirty := false
	if s.armed >= 0 && now > s.armedAt && now-s.armedAt > ms(m.cfg.SelectionTimeout) {
		m.log.Infof("selection timeout, clearing")
		s.disarm()
		dirty = true
	}
	if s.notice != "" && now >= s.noticeUntil {
		s.notice = ""
		dirty = true
	}
	if m.connected() != m.linkShown {
		dirty = true
	}
	if dirty {
		m.redraw()
	}
}

func (s *playbackScreen) draw(m *Machine) {
	m.r.FillScreen(colorBackground)

	title := "MacroPad   BT: off"
	if m.linkShown {
		title = "MacroPad   BT: on"
	}
	titleColor := colorTitle
	if s.notice != "" {
		title, titleColor = s.notice, colorNotice
	}
	drawTitle(m, title, titleColor)

	confirmAt := -1
	if s.armed >= 0 {
		confirmAt = ConfirmQuadrant(s.armed)
	}
	for i := 0; i < store.Slots; i++ {
		q := m.cfg.Quadrant(i)
		switch {
		case i == confirmAt:
			m.addButton(btnConfirm, q, colorConfirm, fmt.Sprintf("CONFIRM %d", s.armed+1))
		case i == s.armed:
			m.addButton(btnMacro0+buttonID(i), q, colorArmed, m.slots[i])
		default:
			m.addButton(btnMacro0+buttonID(i), q, colorMacro, m.slots[i])
		}
	}
}

// configScreen picks the slot to edit.
type configScreen struct{}

func (s *configScreen) mode() Mode { return ModeConfig }

func (s *configScreen) release(m *Machine, t touch) {
	id, ok := m.hit(t.x, t.y)
	if !ok {
		return
	}
	switch {
	case id == btnBack:
		m.setScreen(newPlayback())
	case id <= btnMacro3:
		slot := int(id - btnMacro0)
		k := &keyboardScreen{slot: slot, buf: NewTextBuffer(m.cfg.EditCapacity), page: PageLower}
		k.buf.Reset(m.slots[slot])
		m.setScreen(k)
	}
}

func (s *configScreen) tick(m *Machine, now uint64) {}

func (s *configScreen) draw(m *Machine) {
	m.r.FillScreen(colorBackground)
	drawTitle(m, "Configure: pick a macro", colorTitle)
	m.addButton(btnBack, m.cfg.titleButton(), colorControl, "Back")
	for i := 0; i < store.Slots; i++ {
		m.addButton(btnMacro0+buttonID(i), m.cfg.Quadrant(i), colorEdit, m.slots[i])
	}
}

// keyboardScreen edits one slot.
type keyboardScreen struct {
	slot int
	buf  *TextBuffer
	page Page
}

func (s *keyboardScreen) mode() Mode { return ModeEditKeyboard }

func (s *keyboardScreen) release(m *Machine, t touch) {
	id, ok := m.hit(t.x, t.y)
	if !ok {
		return
	}
	changed := false
	switch id {
	case btnPage:
		s.page = s.page.next()
		changed = true
	case btnShift:
		if s.page == PageUpper {
			s.page = PageLower
		} else {
			s.page = PageUpper
		}
		changed = true
	case btnSpace:
		changed = s.buf.Append(' ')
	case btnBackspace:
		changed = s.buf.Backspace()
	case btnSave:
		m.save(s.slot, s.buf.String())
		m.setScreen(&configScreen{})
		return
	case btnKeyGrid:
		row, col, inGrid := m.cfg.keyAt(t.x, t.y)
		if !inGrid {
			return
		}
		if k := keyTables[s.page][row][col]; k != "" {
			changed = s.buf.Append(k[0])
		}
	}
	if changed {
		m.redraw()
	}
}

func (s *keyboardScreen) tick(m *Machine, now uint64) {}

func (s *keyboardScreen) draw(m *Machine) {
	m.r.FillScreen(colorBackground)
	drawTitle(m, fmt.Sprintf("Edit Macro %d  %d/%d", s.slot+1, s.buf.Len(), s.buf.Cap()), colorTitle)

	p := m.cfg.preview()
	m.r.DrawButton(p.X, p.Y, p.W, p.H, colorPreview, previewText(s.buf.String(), 48)+"_")

	m.buttons = append(m.buttons, button{id: btnKeyGrid, r: m.cfg.keyGrid()})
	for row := 0; row < keyRows; row++ {
		for col := 0; col < keyCols; col++ {
			k := keyTables[s.page][row][col]
			if k == "" {
				continue
			}
			c := m.cfg.keyCell(row, col)
			m.r.DrawButton(c.X, c.Y, c.W, c.H, colorKey, keyLabel(k))
		}
	}

	ctl := m.cfg.controlKeys()
	m.addButton(btnPage, ctl[0], colorControl, s.page.next().String())
	if s.page.letters() {
		label := "Shift"
		if s.page == PageUpper {
			label = "shift"
		}
		m.addButton(btnShift, ctl[1], colorControl, label)
	}
	m.addButton(btnSpace, ctl[2], colorKey, "Space")
	m.addButton(btnBackspace, ctl[3], colorControl, "Del")
	m.addButton(btnSave, ctl[4], colorSave, "Save")
}

// previewText keeps the tail of s that fits the preview line.
func previewText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// maintenanceScreen shows link status and can wipe the stored macros.
type maintenanceScreen struct{}

func (s *maintenanceScreen) mode() Mode { return ModeLinkMaintenance }

func (s *maintenanceScreen) release(m *Machine, t touch) {
	id, ok := m.hit(t.x, t.y)
	if !ok {
		return
	}
	switch id {
	case btnBack:
		m.setScreen(newPlayback())
	case btnClear:
		m.eraseAll()
		p := newPlayback()
		p.notice = "Stored data cleared"
		p.noticeUntil = t.now + ms(m.cfg.NoticeDuration)
		m.setScreen(p)
	}
}

func (s *maintenanceScreen) tick(m *Machine, now uint64) {
	if m.connected() != m.linkShown {
		m.redraw()
	}
}

func (s *maintenanceScreen) draw(m *Machine) {
	m.r.FillScreen(colorBackground)
	drawTitle(m, "Link Maintenance", colorTitle)

	link := "disconnected"
	if m.linkShown {
		link = "connected"
	}
	lines := []string{"Link: " + link, ""}
	for i := 0; i < store.Slots; i++ {
		lines = append(lines, fmt.Sprintf("%s: %d bytes", store.Key(i), len(m.slots[i])))
	}
	lines = append(lines, "", "Build: "+buildinfo.Short())
	p := m.cfg.statusPanel()
	m.r.DrawPanel(p.X, p.Y, p.W, p.H, lines)

	m.addButton(btnBack, m.cfg.maintenanceBack(), colorControl, "Back")
	m.addButton(btnClear, m.cfg.maintenanceClear(), colorDanger, "Clear stored data")
}
