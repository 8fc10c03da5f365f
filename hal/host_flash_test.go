//go:build !tinygo

package hal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestFlash(t *testing.T) *FileFlash {
	t.Helper()
	ff, err := OpenFlashFile(filepath.Join(t.TempDir(), "test.flash"), 2*hostFlashEraseBlockBytes)
	if err != nil {
		t.Fatalf("OpenFlashFile: %v", err)
	}
	t.Cleanup(func() { _ = ff.Close() })
	return ff
}

func TestFileFlashStartsErased(t *testing.T) {
	ff := openTestFlash(t)
	if ff.SizeBytes() != 2*hostFlashEraseBlockBytes {
		t.Fatalf("SizeBytes() = %d", ff.SizeBytes())
	}
	buf := make([]byte, 16)
	if _, err := ff.ReadAt(buf, 100); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(buf, bytes.Repeat([]byte{0xFF}, 16)) {
		t.Fatalf("fresh flash = % x", buf)
	}
}

func TestFileFlashWriteRequiresErase(t *testing.T) {
	ff := openTestFlash(t)
	if _, err := ff.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("first WriteAt: %v", err)
	}
	// Clearing more bits is allowed.
	if _, err := ff.WriteAt([]byte{0x0E}, 10); err != nil {
		t.Fatalf("clearing WriteAt: %v", err)
	}
	// Setting a cleared bit is not.
	if _, err := ff.WriteAt([]byte{0xF0}, 10); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("WriteAt over programmed bits = %v, want ErrFlashWriteRequiresErase", err)
	}

	if err := ff.Erase(0, hostFlashEraseBlockBytes); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := ff.WriteAt([]byte{0xF0}, 10); err != nil {
		t.Fatalf("WriteAt after erase: %v", err)
	}
	got := make([]byte, 1)
	if _, err := ff.ReadAt(got, 10); err != nil || got[0] != 0xF0 {
		t.Fatalf("ReadAt = %x, %v", got, err)
	}
}

func TestFileFlashRejectsBadRanges(t *testing.T) {
	ff := openTestFlash(t)
	if err := ff.Erase(100, hostFlashEraseBlockBytes); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("unaligned Erase = %v", err)
	}
	if err := ff.Erase(0, 3*hostFlashEraseBlockBytes); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("oversized Erase = %v", err)
	}
	if _, err := ff.WriteAt([]byte{0}, ff.SizeBytes()); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("WriteAt past end = %v", err)
	}
}
