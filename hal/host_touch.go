//go:build !tinygo

package hal

import "sync"

// hostTouch is fed by the window (mouse or touchscreen) and read by the
// firmware's touch sampler.
type hostTouch struct {
	mu sync.Mutex
	s  TouchSample
}

func (t *hostTouch) Read() TouchSample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s
}

func (t *hostTouch) set(s TouchSample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s = s
}
