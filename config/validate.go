package config

import (
	"fmt"

	"macropad/hal"
)

const flashEraseBlock = 4096

// Validate checks cfg as given plus the defaults Normalize would add. It
// does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	d := cfg.Display
	if d.Width < 0 || d.Height < 0 || d.TestMs < 0 {
		return fmt.Errorf("display: negative value")
	}

	t := cfg.Timing
	for name, v := range map[string]int{
		"ignore_below_ms":      t.IgnoreBelowMs,
		"config_hold_ms":       t.ConfigHoldMs,
		"maintenance_hold_ms":  t.MaintenanceHoldMs,
		"selection_timeout_ms": t.SelectionTimeoutMs,
		"notice_ms":            t.NoticeMs,
		"debounce_ms":          t.DebounceMs,
	} {
		if v < 0 {
			return fmt.Errorf("timing: %s must not be negative", name)
		}
	}

	if cfg.Storage.FlashSize%flashEraseBlock != 0 {
		return fmt.Errorf("storage: flash_size %d not a multiple of %d", cfg.Storage.FlashSize, flashEraseBlock)
	}
	if cfg.Storage.FlashSize != 0 && cfg.Storage.FlashSize < 4*flashEraseBlock {
		return fmt.Errorf("storage: flash_size %d cannot hold 4 slots", cfg.Storage.FlashSize)
	}

	if cfg.Link.Baud < 0 {
		return fmt.Errorf("link: negative baud")
	}
	if cfg.Link.Baud != 0 && cfg.Link.Serial == "" {
		return fmt.Errorf("link: baud set without serial port")
	}

	if _, ok := parseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}

	// Relations between thresholds only make sense with defaults applied.
	n := *cfg
	Normalize(&n)
	if _, ok := parseLevel(n.Log.Level); !ok {
		return fmt.Errorf("log: unknown level %q from %s", n.Log.Level, hal.LogLevelEnvVar)
	}
	if err := n.UIConfig().Validate(); err != nil {
		return err
	}
	return nil
}
