package hid

// Usage IDs from the HID keyboard/keypad page.
const (
	keyA     = 0x04
	key1     = 0x1E
	key0     = 0x27
	keyEnter = 0x28
	keyTab   = 0x2B
	keySpace = 0x2C
)

type stroke struct {
	mod Modifier
	key byte
}

// usPunct maps the punctuation of a US layout; the shifted character of
// each pair shares the key.
var usPunct = map[rune]stroke{
	'-': {ModNone, 0x2D}, '_': {ModShiftLeft, 0x2D},
	'=': {ModNone, 0x2E}, '+': {ModShiftLeft, 0x2E},
	'[': {ModNone, 0x2F}, '{': {ModShiftLeft, 0x2F},
	']': {ModNone, 0x30}, '}': {ModShiftLeft, 0x30},
	'\\': {ModNone, 0x31}, '|': {ModShiftLeft, 0x31},
	';': {ModNone, 0x33}, ':': {ModShiftLeft, 0x33},
	'\'': {ModNone, 0x34}, '"': {ModShiftLeft, 0x34},
	'`': {ModNone, 0x35}, '~': {ModShiftLeft, 0x35},
	',': {ModNone, 0x36}, '<': {ModShiftLeft, 0x36},
	'.': {ModNone, 0x37}, '>': {ModShiftLeft, 0x37},
	'/': {ModNone, 0x38}, '?': {ModShiftLeft, 0x38},
}

// Shifted digit row, in key order 1..0.
const usDigitShift = "!@#$%^&*()"

// lookupUS returns the keystroke for r on a US layout.
func lookupUS(r rune) (stroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return stroke{ModNone, keyA + byte(r-'a')}, true
	case r >= 'A' && r <= 'Z':
		return stroke{ModShiftLeft, keyA + byte(r-'A')}, true
	case r == '0':
		return stroke{ModNone, key0}, true
	case r >= '1' && r <= '9':
		return stroke{ModNone, key1 + byte(r-'1')}, true
	case r == ' ':
		return stroke{ModNone, keySpace}, true
	case r == '\n':
		return stroke{ModNone, keyEnter}, true
	case r == '\t':
		return stroke{ModNone, keyTab}, true
	}
	for i, c := range usDigitShift {
		if c == r {
			return stroke{ModShiftLeft, key1 + byte(i)}, true
		}
	}
	s, ok := usPunct[r]
	return s, ok
}
