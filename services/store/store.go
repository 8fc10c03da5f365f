// Package store persists the four macro strings.
package store

import (
	"errors"
	"strconv"
	"sync"
)

// Slots is the number of macro slots.
const Slots = 4

// MaxTextLen bounds a stored macro in bytes.
const MaxTextLen = 511

var (
	ErrNotFound = errors.New("store: not found")
	ErrCorrupt  = errors.New("store: corrupt record")
	ErrTooLong  = errors.New("store: text too long")
	ErrBadSlot  = errors.New("store: bad slot")
)

// Store is a 4-slot string key/value store. Get on a slot that was never
// written returns ErrNotFound.
type Store interface {
	Get(slot int) (string, error)
	Set(slot int, text string) error
	EraseAll() error
}

// Key returns the persistent key of a slot: "macro0" .. "macro3".
func Key(slot int) string {
	return "macro" + strconv.Itoa(slot)
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= Slots {
		return ErrBadSlot
	}
	return nil
}

func checkText(text string) error {
	if len(text) > MaxTextLen {
		return ErrTooLong
	}
	return nil
}

// MemStore keeps macros in RAM. It is the fallback when no flash is
// available and is safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	text map[int]string
}

func NewMemStore() *MemStore {
	return &MemStore{text: make(map[int]string)}
}

func (s *MemStore) Get(slot int) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.text[slot]
	if !ok {
		return "", ErrNotFound
	}
	return t, nil
}

func (s *MemStore) Set(slot int, text string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := checkText(text); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text[slot] = text
	return nil
}

func (s *MemStore) EraseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = make(map[int]string)
	return nil
}
