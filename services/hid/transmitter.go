package hid

import (
	"errors"
	"fmt"

	"macropad/hal"
	"macropad/services/logger"
)

var ErrNotConnected = errors.New("hid: host not connected")

// Transmitter types text over a hal.Link.
type Transmitter struct {
	link hal.Link
	log  *logger.Logger

	skipped int
}

func NewTransmitter(link hal.Link, log *logger.Logger) *Transmitter {
	return &Transmitter{link: link, log: log}
}

// Connected reports whether a host is paired.
func (t *Transmitter) Connected() bool {
	return t.link != nil && t.link.Connected()
}

// Skipped reports how many runes had no key on the layout so far.
func (t *Transmitter) Skipped() int { return t.skipped }

// Send types text as one press and one release report per character.
// Characters the layout cannot type are skipped. It returns ErrNotConnected,
// without writing anything, when no host is paired.
func (t *Transmitter) Send(text string) error {
	if !t.Connected() {
		t.log.Warnf("not connected, dropping %q", logger.Clip(text, 40))
		return ErrNotConnected
	}

	var r Report
	skipped := 0
	for _, c := range text {
		s, ok := lookupUS(c)
		if !ok {
			skipped++
			continue
		}
		if err := t.link.WriteReport(r.Keyboard(s.mod, s.key)[:]); err != nil {
			return fmt.Errorf("hid: press %q: %w", c, err)
		}
		if err := t.link.WriteReport(r.Release()[:]); err != nil {
			return fmt.Errorf("hid: release %q: %w", c, err)
		}
	}
	if skipped > 0 {
		t.skipped += skipped
		t.log.Warnf("skipped %d untypeable characters", skipped)
	}
	t.log.Infof("sent %q", logger.Clip(text, 40))
	return nil
}
