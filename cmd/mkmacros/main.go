//go:build !tinygo

// Mkmacros builds, inspects and erases macro flash images for the keypad.
//
// Usage:
//
//	mkmacros build --in macros.yaml --out macropad.flash
//	mkmacros dump macropad.flash
//	mkmacros erase macropad.flash
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macropad/internal/buildinfo"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mkmacros",
	Short: "Macro flash image tool",
	Long: `Builds and inspects the flash images that hold the keypad's four macros.

The host build of the keypad reads the same image through its emulated
flash, so an image built here can be loaded with -config or the
MACROPAD_FLASH_PATH environment variable.`,
	Version:       buildinfo.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mkmacros %s\n", buildinfo.String())
	},
}
