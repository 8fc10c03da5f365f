// Package hid types macro text into a paired host as keyboard reports.
package hid

// Report is an 8-byte boot keyboard report: modifiers, reserved, six keys.
type Report [8]byte

type Modifier byte

const (
	ModNone       Modifier = 0x0
	ModCtrlLeft   Modifier = 1 << 0
	ModShiftLeft  Modifier = 1 << 1
	ModAltLeft    Modifier = 1 << 2
	ModGuiLeft    Modifier = 1 << 3
	ModCtrlRight  Modifier = 1 << 4
	ModShiftRight Modifier = 1 << 5
	ModAltRight   Modifier = 1 << 6
	ModGuiRight   Modifier = 1 << 7
)

// Keyboard fills r with mod and up to six key usages.
func (r *Report) Keyboard(mod Modifier, keys ...byte) *Report {
	r[0] = byte(mod)
	r[1] = 0x0
	for i := 0; i < 6; i++ {
		if i < len(keys) {
			r[i+2] = keys[i]
		} else {
			r[i+2] = 0x0
		}
	}
	return r
}

// Release clears every key and modifier.
func (r *Report) Release() *Report {
	return r.Keyboard(ModNone)
}
