package ui

import (
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"macropad/services/store"
)

type recRenderer struct {
	flushes int
	labels  []string // labels of the frame being drawn
	last    []string // labels of the last flushed frame
	panels  [][]string
}

func (r *recRenderer) FillScreen(c color.RGBA) { r.labels = r.labels[:0] }
func (r *recRenderer) FillRect(x, y, w, h int, c color.RGBA) {}
func (r *recRenderer) DrawButton(x, y, w, h int, c color.RGBA, label string) {
	r.labels = append(r.labels, label)
}
func (r *recRenderer) DrawPanel(x, y, w, h int, lines []string) {
	r.panels = append(r.panels, lines)
}
func (r *recRenderer) Flush() error {
	r.flushes++
	r.last = append([]string(nil), r.labels...)
	return nil
}

func (r *recRenderer) shows(label string) bool {
	for _, l := range r.last {
		if l == label {
			return true
		}
	}
	return false
}

type fakeTx struct {
	connected bool
	sent      []string
}

func (t *fakeTx) Connected() bool { return t.connected }
func (t *fakeTx) Send(text string) error {
	t.sent = append(t.sent, text)
	return nil
}

type failStore struct {
	getErr, setErr error
}

func (s failStore) Get(int) (string, error)  { return "", s.getErr }
func (s failStore) Set(int, string) error    { return s.setErr }
func (s failStore) EraseAll() error          { return s.setErr }

const tap = 150 * time.Millisecond

type harness struct {
	m  *Machine
	r  *recRenderer
	st *store.MemStore
	tx *fakeTx
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{r: &recRenderer{}, st: store.NewMemStore(), tx: &fakeTx{connected: true}}
	h.m = New(cfg, h.r, h.st, h.tx, nil)
	return h
}

func center(r Rect) (int16, int16) {
	return int16(r.X + r.W/2), int16(r.Y + r.H/2)
}

func (h *harness) press(r Rect, held time.Duration, now uint64) {
	x, y := center(r)
	h.m.OnTouchRelease(x, y, held, now)
}

func (h *harness) quadrant(i int) Rect { return h.m.cfg.Quadrant(i) }

func TestStartLoadsAndDefaults(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	_ = h.st.Set(2, "Open Terminal")

	h.m.Start(0)

	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v, want playback", h.m.Mode())
	}
	want := []string{"Macro 1", "Macro 2", "Open Terminal", "Macro 4"}
	for i, w := range want {
		if got := h.m.Slot(i); got != w {
			t.Fatalf("Slot(%d) = %q, want %q", i, got, w)
		}
	}
	if h.r.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", h.r.flushes)
	}
	if !h.r.shows("Open Terminal") {
		t.Fatalf("playback frame %q lacks slot text", h.r.last)
	}
}

func TestStartStoreErrorFallsBack(t *testing.T) {
	r := &recRenderer{}
	m := New(DefaultConfig(), r, failStore{getErr: errors.New("flash gone")}, &fakeTx{}, nil)
	m.Start(0)
	for i := 0; i < store.Slots; i++ {
		if m.Slot(i) != DefaultText(i) {
			t.Fatalf("Slot(%d) = %q, want default", i, m.Slot(i))
		}
	}
}

func TestScenarioArmThenConfirm(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	_ = h.st.Set(2, "Open Terminal")
	h.m.Start(0)

	h.press(h.quadrant(2), tap, 0)
	if slot, ok := h.m.Armed(); !ok || slot != 2 {
		t.Fatalf("Armed() = %d, %v, want 2, true", slot, ok)
	}
	if !h.r.shows("CONFIRM 3") {
		t.Fatalf("frame %q lacks confirm button", h.r.last)
	}

	h.press(h.quadrant(1), tap, 2000)

	if len(h.tx.sent) != 1 || h.tx.sent[0] != "Open Terminal" {
		t.Fatalf("sent = %q, want [Open Terminal]", h.tx.sent)
	}
	if _, ok := h.m.Armed(); ok {
		t.Fatalf("selection still armed after confirm")
	}
	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v, want playback", h.m.Mode())
	}
}

func TestConfirmEverySlot(t *testing.T) {
	for i := 0; i < store.Slots; i++ {
		h := newHarness(t, DefaultConfig())
		h.m.Start(0)

		h.press(h.quadrant(i), tap, 10)
		h.press(h.quadrant(ConfirmQuadrant(i)), tap, 20)

		if len(h.tx.sent) != 1 || h.tx.sent[0] != DefaultText(i) {
			t.Fatalf("slot %d: sent = %q", i, h.tx.sent)
		}
		if _, ok := h.m.Armed(); ok {
			t.Fatalf("slot %d: still armed", i)
		}
	}
}

func TestRetapCancels(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)

	h.press(h.quadrant(0), tap, 100)
	h.press(h.quadrant(0), tap, 200)

	if _, ok := h.m.Armed(); ok {
		t.Fatalf("selection armed after re-tap")
	}
	if len(h.tx.sent) != 0 {
		t.Fatalf("sent = %q, want nothing", h.tx.sent)
	}
}

func TestArmOtherMovesSelection(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)

	h.press(h.quadrant(0), tap, 100)
	h.press(h.quadrant(1), tap, 300)

	if slot, ok := h.m.Armed(); !ok || slot != 1 {
		t.Fatalf("Armed() = %d, %v, want 1, true", slot, ok)
	}
	if !h.r.shows("CONFIRM 2") || h.r.shows("CONFIRM 1") {
		t.Fatalf("frame %q", h.r.last)
	}
}

func TestSelectionTimeoutIsStrict(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)

	h.press(h.quadrant(3), tap, 1000)
	draws := h.m.Draws()

	h.m.OnTick(6000)
	if _, ok := h.m.Armed(); !ok {
		t.Fatalf("selection cleared at exactly 5000 ms")
	}
	if h.m.Draws() != draws {
		t.Fatalf("tick without change redrew")
	}

	h.m.OnTick(6001)
	if _, ok := h.m.Armed(); ok {
		t.Fatalf("selection still armed after 5001 ms")
	}
	if h.m.Draws() != draws+1 {
		t.Fatalf("draws = %d, want %d", h.m.Draws(), draws+1)
	}
}

func TestPressDurationClassification(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	draws := h.m.Draws()

	h.press(h.quadrant(0), 99*time.Millisecond, 10)
	if _, ok := h.m.Armed(); ok || h.m.Draws() != draws {
		t.Fatalf("99 ms tap changed state")
	}

	h.m.OnTouchRelease(160, 130, 100*time.Millisecond, 20) // gap between quadrants
	if _, ok := h.m.Armed(); ok || h.m.Draws() != draws {
		t.Fatalf("100 ms miss changed state")
	}

	h.press(h.quadrant(0), 100*time.Millisecond, 30)
	if slot, ok := h.m.Armed(); !ok || slot != 0 {
		t.Fatalf("100 ms tap on button 0 did not arm it")
	}
}

func TestLongPressTransitions(t *testing.T) {
	cases := []struct {
		held time.Duration
		want Mode
	}{
		{4999 * time.Millisecond, ModePlayback},
		{5000 * time.Millisecond, ModeConfig},
		{9999 * time.Millisecond, ModeConfig},
		{10000 * time.Millisecond, ModeLinkMaintenance},
		{30 * time.Second, ModeLinkMaintenance},
	}
	for _, tc := range cases {
		h := newHarness(t, DefaultConfig())
		h.m.Start(0)
		h.press(h.quadrant(1), tap, 0)

		// Anywhere on the screen, even off every button.
		h.m.OnTouchRelease(0, 239, tc.held, 100)

		if h.m.Mode() != tc.want {
			t.Fatalf("held %v: Mode() = %v, want %v", tc.held, h.m.Mode(), tc.want)
		}
		if tc.want != ModePlayback {
			if _, ok := h.m.Armed(); ok {
				t.Fatalf("held %v: selection survived leaving playback", tc.held)
			}
		}
	}
}

func TestTapOutsideClearsSelection(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	h.press(h.quadrant(2), tap, 0)

	h.m.OnTouchRelease(-5, 900, tap, 50)

	if _, ok := h.m.Armed(); ok {
		t.Fatalf("out-of-range touch did not clear selection")
	}
	if len(h.tx.sent) != 0 {
		t.Fatalf("sent = %q", h.tx.sent)
	}
}

func TestConfirmWhileDisconnectedDrops(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.tx.connected = false
	h.m.Start(0)

	h.press(h.quadrant(0), tap, 0)
	h.press(h.quadrant(3), tap, 100)

	if len(h.tx.sent) != 0 {
		t.Fatalf("sent = %q while disconnected", h.tx.sent)
	}
	if _, ok := h.m.Armed(); ok {
		t.Fatalf("selection not cleared")
	}
}

func TestLinkChangeRedrawsTitle(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.tx.connected = false
	h.m.Start(0)
	if !h.r.shows("MacroPad   BT: off") {
		t.Fatalf("frame %q", h.r.last)
	}

	h.tx.connected = true
	h.m.OnTick(100)
	if !h.r.shows("MacroPad   BT: on") {
		t.Fatalf("frame %q after link up", h.r.last)
	}
}

func enterEditor(t *testing.T, h *harness, slot int) {
	t.Helper()
	h.m.OnTouchRelease(0, 0, 5*time.Second, 0)
	if h.m.Mode() != ModeConfig {
		t.Fatalf("Mode() = %v, want config", h.m.Mode())
	}
	h.press(h.quadrant(slot), tap, 10)
	if h.m.Mode() != ModeEditKeyboard {
		t.Fatalf("Mode() = %v, want edit-keyboard", h.m.Mode())
	}
}

func TestConfigBack(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	h.m.OnTouchRelease(0, 0, 5*time.Second, 0)

	h.m.OnTouchRelease(160, 130, tap, 10) // nothing there
	if h.m.Mode() != ModeConfig {
		t.Fatalf("miss left config")
	}
	h.press(h.m.cfg.titleButton(), tap, 20)
	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v, want playback", h.m.Mode())
	}
}

func TestEditorSeedsAndSaves(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	_ = h.st.Set(1, "hi")
	h.m.Start(0)
	enterEditor(t, h, 1)

	slot, text, page, ok := h.m.Editing()
	if !ok || slot != 1 || text != "hi" || page != PageLower {
		t.Fatalf("Editing() = %d %q %v %v", slot, text, page, ok)
	}

	cfg := h.m.cfg
	h.press(cfg.keyCell(0, 0), tap, 20)         // q
	h.press(cfg.controlKeys()[2], tap, 30)      // space
	h.press(cfg.controlKeys()[1], tap, 40)      // shift
	h.press(cfg.keyCell(1, 0), tap, 50)         // A
	h.press(cfg.controlKeys()[3], tap, 60)      // backspace
	h.press(cfg.keyCell(2, 1), tap, 70)         // X
	if _, text, _, _ := h.m.Editing(); text != "hiq X" {
		t.Fatalf("buffer = %q, want %q", text, "hiq X")
	}

	h.press(cfg.controlKeys()[4], tap, 80)

	if h.m.Mode() != ModeConfig {
		t.Fatalf("Mode() = %v after save, want config", h.m.Mode())
	}
	if got, err := h.st.Get(1); err != nil || got != "hiq X" {
		t.Fatalf("store Get(1) = %q, %v", got, err)
	}
	if h.m.Slot(1) != "hiq X" {
		t.Fatalf("Slot(1) = %q", h.m.Slot(1))
	}
	if _, _, _, ok := h.m.Editing(); ok {
		t.Fatalf("edit buffer survived save")
	}
}

func TestEditorCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EditCapacity = 4
	h := newHarness(t, cfg)
	_ = h.st.Set(0, "ab")
	h.m.Start(0)
	enterEditor(t, h, 0)

	q := cfg.keyCell(0, 0)
	h.press(q, tap, 20)
	h.press(q, tap, 30)
	draws := h.m.Draws()
	h.press(q, tap, 40)
	h.press(cfg.controlKeys()[2], tap, 50)

	if _, text, _, _ := h.m.Editing(); text != "abqq" {
		t.Fatalf("buffer = %q, want %q", text, "abqq")
	}
	if h.m.Draws() != draws {
		t.Fatalf("rejected append redrew")
	}
}

func TestEditorBackspaceEmpty(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	_ = h.st.Set(3, "")
	h.m.Start(0)
	enterEditor(t, h, 3)

	for i := 0; i < 3; i++ {
		h.press(h.m.cfg.controlKeys()[3], tap, uint64(20+i))
	}
	if _, text, _, ok := h.m.Editing(); !ok || text != "" {
		t.Fatalf("Editing() = %q, %v", text, ok)
	}
}

func TestEditorPageCycle(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	enterEditor(t, h, 0)
	cfg := h.m.cfg
	page := func() Page { _, _, p, _ := h.m.Editing(); return p }

	h.press(cfg.controlKeys()[1], tap, 20) // shift
	if page() != PageUpper {
		t.Fatalf("page = %v, want upper", page())
	}
	h.press(cfg.controlKeys()[0], tap, 30)
	if page() != PageNumbers {
		t.Fatalf("upper -> %v, want numbers", page())
	}

	// No shift key on the numbers page.
	h.press(cfg.controlKeys()[1], tap, 40)
	if page() != PageNumbers {
		t.Fatalf("shift on numbers page changed it to %v", page())
	}

	h.press(cfg.keyCell(0, 9), tap, 45)
	if _, text, _, _ := h.m.Editing(); !strings.HasSuffix(text, "0") {
		t.Fatalf("numbers page key gave %q", text)
	}

	h.press(cfg.controlKeys()[0], tap, 50)
	if page() != PageSymbols {
		t.Fatalf("numbers -> %v, want symbols", page())
	}
	h.press(cfg.controlKeys()[0], tap, 60)
	if page() != PageLower {
		t.Fatalf("symbols -> %v, want lower", page())
	}
}

func TestEditorGapKeyIgnored(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	enterEditor(t, h, 0)
	_, before, _, _ := h.m.Editing()
	draws := h.m.Draws()

	h.press(h.m.cfg.keyCell(1, 9), tap, 20)

	if _, after, _, _ := h.m.Editing(); after != before || h.m.Draws() != draws {
		t.Fatalf("gap cell changed buffer %q -> %q", before, after)
	}
}

func TestSaveFailureLeavesSlotUnchanged(t *testing.T) {
	r := &recRenderer{}
	m := New(DefaultConfig(), r, failStore{getErr: store.ErrNotFound, setErr: errors.New("write failed")}, &fakeTx{}, nil)
	m.Start(0)
	m.OnTouchRelease(0, 0, 5*time.Second, 0)
	x, y := center(m.cfg.Quadrant(0))
	m.OnTouchRelease(x, y, tap, 10)
	x, y = center(m.cfg.keyCell(0, 1))
	m.OnTouchRelease(x, y, tap, 20)
	x, y = center(m.cfg.controlKeys()[4])
	m.OnTouchRelease(x, y, tap, 30)

	if m.Mode() != ModeConfig {
		t.Fatalf("Mode() = %v, want config", m.Mode())
	}
	if m.Slot(0) != "Macro 1" {
		t.Fatalf("Slot(0) = %q after failed save, want %q", m.Slot(0), "Macro 1")
	}
}

func TestMaintenanceClear(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	for i := 0; i < store.Slots; i++ {
		_ = h.st.Set(i, "custom")
	}
	h.m.Start(0)
	h.m.OnTouchRelease(0, 0, 10*time.Second, 0)
	if h.m.Mode() != ModeLinkMaintenance {
		t.Fatalf("Mode() = %v", h.m.Mode())
	}
	if len(h.r.panels) == 0 || h.r.panels[len(h.r.panels)-1][2] != "macro0: 6 bytes" {
		t.Fatalf("status panel = %q", h.r.panels)
	}

	h.press(h.m.cfg.maintenanceClear(), tap, 1000)

	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v, want playback", h.m.Mode())
	}
	for i := 0; i < store.Slots; i++ {
		if h.m.Slot(i) != DefaultText(i) {
			t.Fatalf("Slot(%d) = %q, want default", i, h.m.Slot(i))
		}
		if _, err := h.st.Get(i); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("store Get(%d) err = %v", i, err)
		}
	}
	if h.m.Notice() == "" || !h.r.shows(h.m.Notice()) {
		t.Fatalf("no acknowledgment shown, frame %q", h.r.last)
	}

	h.m.OnTick(2499)
	if h.m.Notice() == "" {
		t.Fatalf("notice removed early")
	}
	h.m.OnTick(2500)
	if h.m.Notice() != "" {
		t.Fatalf("notice still shown")
	}
}

func TestMaintenanceBack(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)
	h.m.OnTouchRelease(0, 0, 10*time.Second, 0)

	h.press(h.m.cfg.maintenanceBack(), tap, 100)
	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v, want playback", h.m.Mode())
	}
}

func TestDisplayTest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisplayTest = true

	h := newHarness(t, cfg)
	h.m.Start(100)
	if h.m.Mode() != ModeDisplayTest {
		t.Fatalf("Mode() = %v, want display-test", h.m.Mode())
	}
	h.m.OnTick(2099)
	if h.m.Mode() != ModeDisplayTest {
		t.Fatalf("left display test early")
	}
	h.m.OnTick(2100)
	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v after duration, want playback", h.m.Mode())
	}

	h = newHarness(t, cfg)
	h.m.Start(0)
	h.m.OnTouchRelease(1, 1, 10*time.Millisecond, 5)
	if h.m.Mode() != ModePlayback {
		t.Fatalf("Mode() = %v after touch, want playback", h.m.Mode())
	}
}

func TestEveryTransitionRedrawsOnce(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.m.Start(0)

	steps := []func(){
		func() { h.press(h.quadrant(0), tap, 10) },
		func() { h.press(h.quadrant(0), tap, 20) },
		func() { h.m.OnTouchRelease(0, 0, 5*time.Second, 30) },
		func() { h.press(h.quadrant(2), tap, 40) },
		func() { h.press(h.m.cfg.controlKeys()[4], tap, 50) },
		func() { h.press(h.m.cfg.titleButton(), tap, 60) },
	}
	for i, step := range steps {
		before := h.r.flushes
		step()
		if h.r.flushes != before+1 {
			t.Fatalf("step %d: flushes %d -> %d, want one redraw", i, before, h.r.flushes)
		}
	}
}
