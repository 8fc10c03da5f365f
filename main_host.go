//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"macropad/app"
	"macropad/config"
	"macropad/hal"
)

func main() {
	var (
		cfgPath     string
		headless    bool
		displayTest bool
		hc          hal.HeadlessConfig
	)
	flag.StringVar(&cfgPath, "config", "", "YAML config file (empty = defaults).")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hc.Hz, "hz", 100, "Tick rate in headless mode.")
	flag.Uint64Var(&hc.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&displayTest, "display-test", false, "Show colour bars before playback.")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fail(err)
	}
	if err := config.Validate(cfg); err != nil {
		fail(err)
	}
	config.Normalize(cfg)
	if displayTest {
		cfg.Display.Test = true
	}

	appCfg := cfg.AppConfig()
	start := func(ctx context.Context, h hal.HAL) error {
		a, err := app.New(h, appCfg)
		if err != nil {
			return err
		}
		return a.Run(ctx)
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, hostConfig(cfg), hc, start)
	} else {
		err = hal.RunWindow(hostConfig(cfg), start)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fail(err)
	}
}

func hostConfig(cfg *config.Config) hal.HostConfig {
	return hal.HostConfig{
		Width:     cfg.Display.Width,
		Height:    cfg.Display.Height,
		FlashPath: cfg.Storage.FlashPath,
		FlashSize: cfg.Storage.FlashSize,
		LogLevel:  cfg.Log.Level,
		Serial:    cfg.Link.Serial,
		Baud:      cfg.Link.Baud,
		Connected: cfg.Link.Connected,
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
