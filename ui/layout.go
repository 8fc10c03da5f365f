package ui

const (
	minWidth  = 240
	minHeight = 200

	margin     = 10
	titleH     = 30
	gridTop    = 35
	quadGapX   = 20
	quadGapY   = 15
	controlH   = 40
	keyTop     = 60
	keyCols    = 10
	keyRows    = 3
	previewTop = 32
	previewH   = 24
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r. Both edges are included, so a
// zero-sized rect still contains its origin.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Quadrant returns the rectangle of quadrant i (0 top-left, 1 top-right,
// 2 bottom-left, 3 bottom-right).
func (c Config) Quadrant(i int) Rect {
	w := (c.Width - 2*margin - quadGapX) / 2
	h := (c.Height - gridTop - margin - quadGapY) / 2
	r := Rect{X: margin, Y: gridTop, W: w, H: h}
	if i%2 == 1 {
		r.X += w + quadGapX
	}
	if i >= 2 {
		r.Y += h + quadGapY
	}
	return r
}

// ConfirmQuadrant is the quadrant diagonally opposite armed.
func ConfirmQuadrant(armed int) int {
	return 3 - armed
}

func (c Config) titleBar() Rect { return Rect{X: 0, Y: 0, W: c.Width, H: titleH} }

// titleButton is the back button at the right end of the title bar.
func (c Config) titleButton() Rect {
	return Rect{X: c.Width - 60, Y: 3, W: 55, H: titleH - 6}
}

func (c Config) controlRow() int { return c.Height - controlH - margin }

// Maintenance screen.
func (c Config) statusPanel() Rect {
	return Rect{X: margin, Y: gridTop, W: c.Width - 2*margin, H: c.controlRow() - gridTop - margin}
}

func (c Config) maintenanceBack() Rect {
	q := c.Quadrant(2)
	return Rect{X: q.X, Y: c.controlRow(), W: q.W, H: controlH}
}

func (c Config) maintenanceClear() Rect {
	q := c.Quadrant(3)
	return Rect{X: q.X, Y: c.controlRow(), W: q.W, H: controlH}
}

// Keyboard screen.
func (c Config) keyPitchX() int { return c.Width / keyCols }
func (c Config) keyPitchY() int { return (c.controlRow() - keyTop - 4) / keyRows }

func (c Config) keyGrid() Rect {
	return Rect{X: 0, Y: keyTop, W: c.keyPitchX() * keyCols, H: c.keyPitchY() * keyRows}
}

func (c Config) keyCell(row, col int) Rect {
	px, py := c.keyPitchX(), c.keyPitchY()
	return Rect{X: col*px + 1, Y: keyTop + row*py + 2, W: px - 2, H: py - 4}
}

// keyAt maps a point inside the grid to its cell.
func (c Config) keyAt(x, y int) (row, col int, ok bool) {
	g := c.keyGrid()
	if !g.Contains(x, y) {
		return 0, 0, false
	}
	col = (x - g.X) / c.keyPitchX()
	row = (y - g.Y) / c.keyPitchY()
	if col < 0 || col >= keyCols || row < 0 || row >= keyRows {
		return 0, 0, false
	}
	return row, col, true
}

func (c Config) preview() Rect {
	return Rect{X: 5, Y: previewTop, W: c.Width - 10, H: previewH}
}

// Control row of the keyboard, left to right: page, shift, space,
// backspace, save.
func (c Config) controlKeys() [5]Rect {
	y := c.controlRow()
	u := c.Width / 16
	widths := [5]int{3 * u, 3 * u, 4 * u, 3 * u, 3 * u}
	var out [5]Rect
	x := 0
	for i, w := range widths {
		out[i] = Rect{X: x + 1, Y: y, W: w - 2, H: controlH}
		x += w
	}
	return out
}

// keyTables holds the character grid of each page. Empty cells are gaps.
var keyTables = [4][keyRows][keyCols]string{
	PageLower: {
		{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
		{"a", "s", "d", "f", "g", "h", "j", "k", "l", ""},
		{"z", "x", "c", "v", "b", "n", "m", ",", ".", ""},
	},
	PageUpper: {
		{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
		{"A", "S", "D", "F", "G", "H", "J", "K", "L", ""},
		{"Z", "X", "C", "V", "B", "N", "M", "!", "?", ""},
	},
	PageNumbers: {
		{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
		{"-", "/", ":", ";", "(", ")", "$", "&", "@", "\""},
		{".", ",", "?", "!", "'", "", "", "", "", ""},
	},
	PageSymbols: {
		{"[", "]", "{", "}", "#", "%", "^", "*", "+", "="},
		{"_", "\\", "|", "~", "<", ">", "`", "", "", ""},
		{"\n", "\t", "", "", "", "", "", "", "", ""},
	},
}

// keyLabel is the text drawn on a key.
func keyLabel(s string) string {
	switch s {
	case "\n":
		return "Ent"
	case "\t":
		return "Tab"
	}
	return s
}
