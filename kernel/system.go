package kernel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// System owns the millisecond timebase, the periodic tasks driven by it,
// and the event mailbox drained by the UI loop.
type System struct {
	now     atomic.Uint64
	dropped atomic.Uint64
	mbox    Mailbox

	mu    sync.Mutex
	tasks []*task
}

type task struct {
	period uint64
	next   uint64
	fn     func(now uint64)
}

// NewSystem creates a kernel instance.
func NewSystem() *System {
	return &System{}
}

// Every registers fn to run every periodMS milliseconds of tick time. Tasks
// run on the goroutine calling TickTo, in registration order.
func (s *System) Every(periodMS uint64, fn func(now uint64)) {
	if periodMS == 0 {
		periodMS = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now.Load()
	s.tasks = append(s.tasks, &task{period: periodMS, next: now + periodMS, fn: fn})
}

// TickTo advances the clock to seq and runs every task that came due. A
// task that fell several periods behind runs once and is rescheduled from
// seq.
func (s *System) TickTo(seq uint64) {
	if seq <= s.now.Load() {
		return
	}
	s.now.Store(seq)

	s.mu.Lock()
	due := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if seq >= t.next {
			t.next += t.period
			if t.next <= seq {
				t.next = seq + t.period
			}
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn(seq)
	}
}

// Now returns the current tick count (1 ms per tick).
func (s *System) Now() uint64 {
	return s.now.Load()
}

// Post queues ev for the UI loop. It returns false, and counts the drop,
// when the mailbox is full.
func (s *System) Post(ev Event) bool {
	if !s.mbox.TrySend(ev) {
		s.dropped.Add(1)
		return false
	}
	return true
}

// Dropped reports how many events Post discarded.
func (s *System) Dropped() uint64 {
	return s.dropped.Load()
}

// Run hands queued events to handle, one at a time, until ctx is done. It is
// the only consumer of the mailbox.
func (s *System) Run(ctx context.Context, handle func(Event)) error {
	for {
		ev, err := s.mbox.Recv(ctx)
		if err != nil {
			return err
		}
		handle(ev)
	}
}

// Yield yields execution to let other tasks run.
func (s *System) Yield() {
	yield()
}

func yield() {
	runtime.Gosched()
}
