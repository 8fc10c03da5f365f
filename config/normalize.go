package config

import (
	"os"
	"strings"
	"time"

	"macropad/app"
	"macropad/hal"
	"macropad/ui"
)

// Normalize fills defaults. It may mutate cfg and must run after Validate.
// An empty log level is taken from MACROPAD_LOG_LEVEL, then info.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	def := ui.DefaultConfig()

	setInt(&cfg.Display.Width, def.Width)
	setInt(&cfg.Display.Height, def.Height)
	setInt(&cfg.Display.TestMs, msOf(def.DisplayTestDuration))

	setInt(&cfg.Timing.IgnoreBelowMs, msOf(def.IgnoreBelow))
	setInt(&cfg.Timing.ConfigHoldMs, msOf(def.ConfigHold))
	setInt(&cfg.Timing.MaintenanceHoldMs, msOf(def.MaintenanceHold))
	setInt(&cfg.Timing.SelectionTimeoutMs, msOf(def.SelectionTimeout))
	setInt(&cfg.Timing.NoticeMs, msOf(def.NoticeDuration))
	setInt(&cfg.Timing.DebounceMs, 20)

	if cfg.Link.Serial != "" {
		setInt(&cfg.Link.Baud, 9600)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(os.Getenv(hal.LogLevelEnvVar)))
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// UIConfig converts a normalized Config.
func (c *Config) UIConfig() ui.Config {
	u := ui.DefaultConfig()
	u.Width = c.Display.Width
	u.Height = c.Display.Height
	u.DisplayTest = c.Display.Test
	u.DisplayTestDuration = durMs(c.Display.TestMs)
	u.IgnoreBelow = durMs(c.Timing.IgnoreBelowMs)
	u.ConfigHold = durMs(c.Timing.ConfigHoldMs)
	u.MaintenanceHold = durMs(c.Timing.MaintenanceHoldMs)
	u.SelectionTimeout = durMs(c.Timing.SelectionTimeoutMs)
	u.NoticeDuration = durMs(c.Timing.NoticeMs)
	return u
}

// AppConfig converts a normalized Config.
func (c *Config) AppConfig() app.Config {
	a := app.DefaultConfig()
	a.UI = c.UIConfig()
	a.Debounce = durMs(c.Timing.DebounceMs)
	if lv, ok := parseLevel(c.Log.Level); ok {
		a.LogLevel = lv
	}
	return a
}

func parseLevel(s string) (hal.LogLevel, bool) {
	switch s {
	case "debug":
		return hal.LogDebug, true
	case "info", "":
		return hal.LogInfo, true
	case "warn":
		return hal.LogWarn, true
	case "error":
		return hal.LogError, true
	case "off":
		return hal.LogError + 1, true
	}
	return 0, false
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func msOf(d time.Duration) int { return int(d / time.Millisecond) }

func durMs(v int) time.Duration { return time.Duration(v) * time.Millisecond }
