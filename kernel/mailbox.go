package kernel

import (
	"context"
	"sync"
)

const mailboxSlots = 16

// Mailbox is a fixed-size multi-producer, single-consumer event queue. The
// zero value is ready to use and it never allocates after the first wait.
type Mailbox struct {
	_ [0]func() // prevent accidental copying.

	mu     sync.Mutex
	head   uint32
	tail   uint32
	slots  [mailboxSlots]Event
	notify chan struct{}
}

func (mb *Mailbox) wake() chan struct{} {
	if mb.notify == nil {
		mb.notify = make(chan struct{}, 1)
	}
	return mb.notify
}

// TrySend enqueues ev, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	mb.mu.Lock()
	if mb.head-mb.tail >= mailboxSlots {
		mb.mu.Unlock()
		return false
	}
	mb.slots[mb.head%mailboxSlots] = ev
	mb.head++
	ch := mb.wake()
	mb.mu.Unlock()

	select {
	case ch <- struct{}{}:
	default:
	}
	return true
}

// Send enqueues ev, waiting for room until ctx is done.
func (mb *Mailbox) Send(ctx context.Context, ev Event) error {
	for !mb.TrySend(ev) {
		if err := ctx.Err(); err != nil {
			return err
		}
		yield()
	}
	return nil
}

// TryRecv dequeues one event, returning false if empty.
func (mb *Mailbox) TryRecv() (Event, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.tail == mb.head {
		return Event{}, false
	}
	ev := mb.slots[mb.tail%mailboxSlots]
	mb.tail++
	return ev, true
}

// Recv blocks until one event is available or ctx is done.
func (mb *Mailbox) Recv(ctx context.Context) (Event, error) {
	for {
		if ev, ok := mb.TryRecv(); ok {
			return ev, nil
		}
		mb.mu.Lock()
		ch := mb.wake()
		mb.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-ch:
		}
	}
}

// Len reports the number of queued events.
func (mb *Mailbox) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return int(mb.head - mb.tail)
}
