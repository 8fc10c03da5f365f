//go:build tinygo

package main

import (
	"macropad/app"
	"macropad/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
