//go:build !tinygo

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"macropad/hal"
	"macropad/services/store"
)

var (
	inPath    string
	outPath   string
	flashSize uint32
)

func init() {
	buildCmd.Flags().StringVar(&inPath, "in", "", "YAML file with the macros (required)")
	buildCmd.Flags().StringVar(&outPath, "out", "macropad.flash", "Output flash image path")
	buildCmd.Flags().Uint32Var(&flashSize, "size", 0, "Flash image size in bytes (0 keeps an existing image or uses 64 KiB)")
	_ = buildCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(eraseCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write macros from a YAML file into a flash image",
	Example: `  # macros.yaml:
  #   macros:
  #     - slot: 1
  #       text: "git status\n"
  #     - slot: 3
  #       text: "Kind regards,\n"
  mkmacros build --in macros.yaml --out macropad.flash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", inPath, err)
		}
		file, err := parseMacros(b)
		if err != nil {
			return fmt.Errorf("%s: %w", inPath, err)
		}
		return withStore(outPath, flashSize, func(st *store.FlashStore) error {
			return writeMacros(cmd.OutOrStdout(), st, file)
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the macros stored in a flash image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return err
		}
		return withStore(args[0], 0, func(st *store.FlashStore) error {
			return dumpMacros(cmd.OutOrStdout(), st)
		})
	},
}

var eraseCmd = &cobra.Command{
	Use:   "erase FILE",
	Short: "Erase every macro slot in a flash image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(args[0], 0, func(st *store.FlashStore) error {
			if err := st.EraseAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "erased %d slots\n", store.Slots)
			return nil
		})
	},
}

type macroFile struct {
	Macros []macroEntry `yaml:"macros"`
}

type macroEntry struct {
	Slot int    `yaml:"slot"`
	Text string `yaml:"text"`
}

// parseMacros decodes and checks a macro file. Slots are 1-based.
func parseMacros(b []byte) (*macroFile, error) {
	var file macroFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	for _, m := range file.Macros {
		if m.Slot < 1 || m.Slot > store.Slots {
			return nil, fmt.Errorf("slot %d: must be 1..%d", m.Slot, store.Slots)
		}
		if seen[m.Slot] {
			return nil, fmt.Errorf("slot %d: listed twice", m.Slot)
		}
		seen[m.Slot] = true
		if len(m.Text) > store.MaxTextLen {
			return nil, fmt.Errorf("slot %d: %w", m.Slot, store.ErrTooLong)
		}
	}
	return &file, nil
}

func writeMacros(w io.Writer, st store.Store, file *macroFile) error {
	for _, m := range file.Macros {
		if err := st.Set(m.Slot-1, m.Text); err != nil {
			return fmt.Errorf("slot %d: %w", m.Slot, err)
		}
		fmt.Fprintf(w, "slot %d: %d bytes\n", m.Slot, len(m.Text))
	}
	return nil
}

func dumpMacros(w io.Writer, st store.Store) error {
	for slot := 0; slot < store.Slots; slot++ {
		text, err := st.Get(slot)
		switch {
		case err == nil:
			fmt.Fprintf(w, "%d %s %q\n", slot+1, store.Key(slot), text)
		case errors.Is(err, store.ErrNotFound):
			fmt.Fprintf(w, "%d %s <empty>\n", slot+1, store.Key(slot))
		case errors.Is(err, store.ErrCorrupt):
			fmt.Fprintf(w, "%d %s <corrupt>\n", slot+1, store.Key(slot))
		default:
			return fmt.Errorf("slot %d: %w", slot+1, err)
		}
	}
	return nil
}

func withStore(path string, size uint32, fn func(*store.FlashStore) error) error {
	ff, err := hal.OpenFlashFile(path, size)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	st, err := store.NewFlashStore(ff)
	if err != nil {
		return err
	}
	return fn(st)
}
