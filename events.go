package boundchan

import "github.com/sirupsen/logrus"

// EventKind identifies the kind of lifecycle event.
type EventKind int

const (
	// EventClosed is emitted once, when [Channel.Close] succeeds.
	EventClosed EventKind = iota
	// EventDestroyed is emitted when [Channel.Destroy] succeeds.
	EventDestroyed
	// EventStorageError is emitted when the storage rejects an operation
	// the channel had already judged feasible.
	EventStorageError
)

func (k EventKind) String() string {
	switch k {
	case EventClosed:
		return "closed"
	case EventDestroyed:
		return "destroyed"
	case EventStorageError:
		return "storage_error"
	default:
		return "unknown"
	}
}

// Event describes a channel lifecycle change. It is passed to the hook
// registered via [WithOnEvent].
type Event struct {
	Kind     EventKind
	Name     string
	Capacity int
	Len      int   // buffered items at the time of the event
	Err      error // set for EventStorageError
}

// emit logs e and calls the onEvent hook if registered. It must be
// called without c.mu held.
func (c *Channel[T]) emit(e Event) {
	entry := c.log.WithFields(logrus.Fields{
		"event":    e.Kind.String(),
		"capacity": e.Capacity,
		"len":      e.Len,
	})
	if e.Err != nil {
		entry.WithError(e.Err).Error("boundchan: storage operation failed")
	} else {
		entry.Debug("boundchan: channel " + e.Kind.String())
	}

	if c.cfg.onEvent == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			c.log.WithField("event", e.Kind.String()).
				WithError(pe).
				Error("boundchan: event hook panicked")
		}
	}()
	c.cfg.onEvent(e)
}
