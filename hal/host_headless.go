//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// RunHeadless runs the firmware without opening a window. Time advances at
// Hz steps per second; the run stops after Ticks steps (0 = until ctx is
// done). Touch input stays released.
func RunHeadless(ctx context.Context, cfg HostConfig, hc HeadlessConfig, start func(ctx context.Context, h HAL) error) error {
	if hc.Hz <= 0 {
		hc.Hz = 100
	}
	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hc.Hz)
	}

	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- start(runCtx, h) }()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			cancel()
			<-done
			return ctx.Err()
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-t.C:
			h.t.step()
			tick++
			if hc.Ticks > 0 && tick >= hc.Ticks {
				cancel()
				if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
		}
	}
}
