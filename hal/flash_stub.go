package hal

// stubFlash is used on boards without a usable data partition. The store
// layer falls back to RAM when it sees a zero size.
type stubFlash struct{}

func (stubFlash) SizeBytes() uint32       { return 0 }
func (stubFlash) EraseBlockBytes() uint32 { return 0 }

func (stubFlash) ReadAt(p []byte, off uint32) (int, error) {
	return 0, ErrNotImplemented
}

func (stubFlash) WriteAt(p []byte, off uint32) (int, error) {
	return 0, ErrNotImplemented
}

func (stubFlash) Erase(off, size uint32) error {
	return ErrNotImplemented
}
