//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

// ezKeyLink drives an Adafruit Bluefruit EZ-Key over UART. Raw HID reports
// are framed as 0xFD followed by the 8-byte boot keyboard report.
type ezKeyLink struct {
	uart   *machine.UART
	paired machine.Pin
}

func newEZKeyLink(uart *machine.UART, tx, rx, paired machine.Pin) *ezKeyLink {
	uart.Configure(machine.UARTConfig{
		BaudRate: 9600,
		TX:       tx,
		RX:       rx,
	})
	paired.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return &ezKeyLink{uart: uart, paired: paired}
}

func (l *ezKeyLink) Connected() bool { return l.paired.Get() }

func (l *ezKeyLink) WriteReport(report []byte) error {
	if len(report) != 8 {
		return errors.New("ezkey: report must be 8 bytes")
	}
	if err := l.uart.WriteByte(0xFD); err != nil {
		return err
	}
	_, err := l.uart.Write(report)
	return err
}
