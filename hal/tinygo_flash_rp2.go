//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2FlashRegionBytes caps the slice of machine.Flash handed to the macro
// store. machine.Flash already starts after the program image.
const rp2FlashRegionBytes = 64 * 1024

type rp2Flash struct {
	size  uint32
	block uint32
}

func newRP2Flash() Flash {
	f := rp2Flash{}
	if bs := machine.Flash.EraseBlockSize(); bs > 0 {
		f.block = uint32(bs)
	}
	if sz := machine.Flash.Size(); sz > 0 {
		if sz > rp2FlashRegionBytes {
			sz = rp2FlashRegionBytes
		}
		f.size = uint32(sz)
	}
	if f.block == 0 || f.size == 0 {
		return stubFlash{}
	}
	return f
}

func (f rp2Flash) SizeBytes() uint32       { return f.size }
func (f rp2Flash) EraseBlockBytes() uint32 { return f.block }

func (f rp2Flash) check(off uint32, n int) error {
	if uint64(off)+uint64(n) > uint64(f.size) {
		return fmt.Errorf("flash range %d+%d outside %d bytes", off, n, f.size)
	}
	return nil
}

func (f rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	if err := f.check(off, len(p)); err != nil {
		return 0, err
	}
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	if err := f.check(off, len(p)); err != nil {
		return 0, err
	}
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.block == 0 {
		return ErrNotImplemented
	}
	if off%f.block != 0 || size%f.block != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: unaligned", off, size)
	}
	if err := f.check(off, int(size)); err != nil {
		return err
	}
	return machine.Flash.EraseBlocks(int64(off/f.block), int64(size/f.block))
}
