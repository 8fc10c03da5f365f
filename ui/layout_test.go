package ui

import "testing"

func TestRectContainsInclusive(t *testing.T) {
	r := Rect{X: 10, Y: 35, W: 140, H: 90}
	cases := []struct {
		x, y int
		want bool
	}{
		{10, 35, true},
		{150, 125, true},
		{151, 125, false},
		{9, 35, false},
		{80, 80, true},
		{80, 126, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}

	zero := Rect{X: 5, Y: 5}
	if !zero.Contains(5, 5) || zero.Contains(6, 5) {
		t.Fatalf("zero-size rect must contain only its origin")
	}
}

func TestQuadrants(t *testing.T) {
	cfg := DefaultConfig()
	want := []Rect{
		{10, 35, 140, 90},
		{170, 35, 140, 90},
		{10, 140, 140, 90},
		{170, 140, 140, 90},
	}
	for i, w := range want {
		if got := cfg.Quadrant(i); got != w {
			t.Fatalf("Quadrant(%d) = %+v, want %+v", i, got, w)
		}
	}
}

func TestConfirmQuadrantPairs(t *testing.T) {
	pairs := map[int]int{0: 3, 1: 2, 2: 1, 3: 0}
	for armed, want := range pairs {
		if got := ConfirmQuadrant(armed); got != want {
			t.Fatalf("ConfirmQuadrant(%d) = %d, want %d", armed, got, want)
		}
	}
}

func TestKeyAt(t *testing.T) {
	cfg := DefaultConfig()

	row, col, ok := cfg.keyAt(0, 60)
	if !ok || row != 0 || col != 0 {
		t.Fatalf("keyAt(0,60) = %d,%d,%v", row, col, ok)
	}
	row, col, ok = cfg.keyAt(319, 185)
	if !ok || row != 2 || col != 9 {
		t.Fatalf("keyAt(319,185) = %d,%d,%v", row, col, ok)
	}
	if _, _, ok := cfg.keyAt(320, 100); ok {
		t.Fatalf("keyAt(320,100) hit a key")
	}
	if _, _, ok := cfg.keyAt(100, 59); ok {
		t.Fatalf("keyAt above the grid hit a key")
	}
	for r := 0; r < keyRows; r++ {
		for c := 0; c < keyCols; c++ {
			x, y := center(cfg.keyCell(r, c))
			gr, gc, ok := cfg.keyAt(int(x), int(y))
			if !ok || gr != r || gc != c {
				t.Fatalf("cell (%d,%d) centre maps to (%d,%d,%v)", r, c, gr, gc, ok)
			}
		}
	}
}

func TestControlRowDisjoint(t *testing.T) {
	cfg := DefaultConfig()
	keys := cfg.controlKeys()
	grid := cfg.keyGrid()
	for i, a := range keys {
		if a.Y <= grid.Y+grid.H {
			t.Fatalf("control %d overlaps the key grid", i)
		}
		for j, b := range keys {
			if i != j && a.X <= b.X+b.W && b.X <= a.X+a.W {
				t.Fatalf("controls %d and %d overlap: %+v %+v", i, j, a, b)
			}
		}
	}
	if last := keys[4]; last.X+last.W > cfg.Width {
		t.Fatalf("save key runs off screen: %+v", last)
	}
}

func TestPageNext(t *testing.T) {
	cases := map[Page]Page{
		PageLower:   PageNumbers,
		PageUpper:   PageNumbers,
		PageNumbers: PageSymbols,
		PageSymbols: PageLower,
	}
	for from, want := range cases {
		if got := from.next(); got != want {
			t.Fatalf("%v.next() = %v, want %v", from, got, want)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModePlayback.String() != "playback" || ModeLinkMaintenance.String() != "link-maintenance" || Mode(99).String() != "unknown" {
		t.Fatalf("Mode.String() mismatch")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	bad := DefaultConfig()
	bad.ConfigHold = bad.MaintenanceHold
	if err := bad.Validate(); err == nil {
		t.Fatalf("Validate() accepted config hold == maintenance hold")
	}
	bad = DefaultConfig()
	bad.Width = 100
	if err := bad.Validate(); err == nil {
		t.Fatalf("Validate() accepted a 100 px wide screen")
	}
}
