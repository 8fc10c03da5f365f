package store

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"macropad/hal"
)

const (
	recordMagic0  = 'M'
	recordMagic1  = 'P'
	recordVersion = 1
	headerLen     = 8
)

// record is the CBOR payload of one slot.
type record struct {
	_    struct{} `cbor:",toarray"`
	Key  string
	Text []byte
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	encMode, decMode = em, dm
}

// FlashStore keeps one slot per erase block at the start of a hal.Flash.
//
// Block layout: an 8-byte header ("MP", version, reserved, payload length
// as uint32 LE) followed by the CBOR payload. Set writes the payload before
// the header, so a write cut short reads back as ErrNotFound.
type FlashStore struct {
	mu    sync.Mutex
	flash hal.Flash
	block uint32
	buf   []byte
}

// NewFlashStore checks that f can hold every slot.
func NewFlashStore(f hal.Flash) (*FlashStore, error) {
	if f == nil {
		return nil, fmt.Errorf("flash store: %w", hal.ErrNotImplemented)
	}
	block := f.EraseBlockBytes()
	if block == 0 || f.SizeBytes() == 0 {
		return nil, fmt.Errorf("flash store: %w", hal.ErrNotImplemented)
	}
	if uint64(block)*Slots > uint64(f.SizeBytes()) {
		return nil, fmt.Errorf("flash store: %d bytes too small for %d slots of %d", f.SizeBytes(), Slots, block)
	}
	if block < headerLen+MaxTextLen+32 {
		return nil, fmt.Errorf("flash store: erase block %d too small", block)
	}
	return &FlashStore{flash: f, block: block, buf: make([]byte, block)}, nil
}

func (s *FlashStore) offset(slot int) uint32 {
	return uint32(slot) * s.block
}

func (s *FlashStore) Get(slot int) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	off := s.offset(slot)
	hdr := s.buf[:headerLen]
	if _, err := s.flash.ReadAt(hdr, off); err != nil {
		return "", fmt.Errorf("read %s: %w", Key(slot), err)
	}
	if hdr[0] == 0xFF && hdr[1] == 0xFF {
		return "", ErrNotFound
	}
	if hdr[0] != recordMagic0 || hdr[1] != recordMagic1 || hdr[2] != recordVersion {
		return "", fmt.Errorf("%s: bad header: %w", Key(slot), ErrCorrupt)
	}
	n := binary.LittleEndian.Uint32(hdr[4:8])
	if n == 0 || n > s.block-headerLen {
		return "", fmt.Errorf("%s: length %d: %w", Key(slot), n, ErrCorrupt)
	}

	payload := s.buf[headerLen : headerLen+n]
	if _, err := s.flash.ReadAt(payload, off+headerLen); err != nil {
		return "", fmt.Errorf("read %s: %w", Key(slot), err)
	}
	var r record
	if err := decMode.Unmarshal(payload, &r); err != nil {
		return "", fmt.Errorf("%s: %v: %w", Key(slot), err, ErrCorrupt)
	}
	if r.Key != Key(slot) {
		return "", fmt.Errorf("%s: holds %q: %w", Key(slot), r.Key, ErrCorrupt)
	}
	return string(r.Text), nil
}

func (s *FlashStore) Set(slot int, text string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := checkText(text); err != nil {
		return err
	}
	payload, err := encMode.Marshal(record{Key: Key(slot), Text: []byte(text)})
	if err != nil {
		return fmt.Errorf("encode %s: %w", Key(slot), err)
	}
	if uint32(len(payload)) > s.block-headerLen {
		return ErrTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	off := s.offset(slot)
	if err := s.flash.Erase(off, s.block); err != nil {
		return fmt.Errorf("erase %s: %w", Key(slot), err)
	}
	if _, err := s.flash.WriteAt(payload, off+headerLen); err != nil {
		return fmt.Errorf("write %s: %w", Key(slot), err)
	}
	var hdr [headerLen]byte
	hdr[0], hdr[1], hdr[2] = recordMagic0, recordMagic1, recordVersion
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(payload)))
	if _, err := s.flash.WriteAt(hdr[:], off); err != nil {
		return fmt.Errorf("write %s header: %w", Key(slot), err)
	}
	return nil
}

func (s *FlashStore) EraseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flash.Erase(0, s.block*Slots); err != nil {
		return fmt.Errorf("erase all: %w", err)
	}
	return nil
}
