package kernel

import "time"

// EventKind identifies what an Event carries.
type EventKind uint8

const (
	// EventTouch is a completed touch: the finger went down and came back up.
	EventTouch EventKind = iota + 1
	// EventTick is the periodic housekeeping tick.
	EventTick
)

func (k EventKind) String() string {
	switch k {
	case EventTouch:
		return "touch"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is the unit of work handed to the UI loop. X, Y and Held are only
// set for EventTouch. Now is the millisecond timestamp the event was
// produced at.
type Event struct {
	Kind EventKind
	X    int16
	Y    int16
	Held time.Duration
	Now  uint64
}
