//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// ezKeyRawReport prefixes a raw keyboard report on the UART HID bridge.
const ezKeyRawReport = 0xFD

// serialLink drives a UART Bluetooth HID bridge (EZ-Key style) through a
// host serial port. The bridge handles pairing itself, so an open port
// counts as connected.
type serialLink struct {
	mu   sync.Mutex
	port *serial.Port
	buf  [9]byte
}

func openSerialLink(name string, baud int) (*serialLink, error) {
	if baud <= 0 {
		baud = 9600
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %q: %w", name, err)
	}
	return &serialLink{port: p}, nil
}

func (l *serialLink) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

func (l *serialLink) WriteReport(report []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return ErrNotImplemented
	}
	if len(report) != 8 {
		return fmt.Errorf("keyboard report: want 8 bytes, got %d", len(report))
	}
	l.buf[0] = ezKeyRawReport
	copy(l.buf[1:], report)
	if _, err := l.port.Write(l.buf[:]); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (l *serialLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}

// loopbackLink stands in for a paired host: it accepts reports and logs
// them at debug level.
type loopbackLink struct {
	logger    *hostLogger
	connected bool
}

func (l *loopbackLink) Connected() bool { return l.connected }

func (l *loopbackLink) WriteReport(report []byte) error {
	if !l.connected {
		return ErrNotImplemented
	}
	l.logger.WriteLevel(LogDebug, "link", fmt.Sprintf("report % x", report))
	return nil
}
