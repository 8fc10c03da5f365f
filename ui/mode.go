package ui

// Mode is the active screen of the keypad.
type Mode uint8

const (
	ModeDisplayTest Mode = iota
	ModePlayback
	ModeConfig
	ModeEditKeyboard
	ModeLinkMaintenance
)

func (m Mode) String() string {
	switch m {
	case ModeDisplayTest:
		return "display-test"
	case ModePlayback:
		return "playback"
	case ModeConfig:
		return "config"
	case ModeEditKeyboard:
		return "edit-keyboard"
	case ModeLinkMaintenance:
		return "link-maintenance"
	default:
		return "unknown"
	}
}

// Page selects the character table of the on-screen keyboard.
type Page uint8

const (
	PageLower Page = iota
	PageUpper
	PageNumbers
	PageSymbols
)

func (p Page) String() string {
	switch p {
	case PageLower:
		return "abc"
	case PageUpper:
		return "ABC"
	case PageNumbers:
		return "123"
	case PageSymbols:
		return "#+="
	default:
		return "?"
	}
}

// next is the page-switch order. Both letter pages go to numbers, so the
// case is lost on a round trip.
func (p Page) next() Page {
	switch p {
	case PageLower, PageUpper:
		return PageNumbers
	case PageNumbers:
		return PageSymbols
	default:
		return PageLower
	}
}

func (p Page) letters() bool { return p == PageLower || p == PageUpper }
