package boundchan

import "errors"

var (
	// ErrClosed is returned by every operation on a closed channel, and by
	// [Channel.Close] when the channel is already closed.
	ErrClosed = errors.New("boundchan: channel is closed")

	// ErrFull is returned by [Channel.TrySend] when the send would block.
	ErrFull = errors.New("boundchan: channel is full")

	// ErrEmpty is returned by [Channel.TryReceive] when the receive would block.
	ErrEmpty = errors.New("boundchan: channel is empty")

	// ErrNotClosed is returned by [Channel.Destroy] on an open channel.
	ErrNotClosed = errors.New("boundchan: destroy called on an open channel")

	// ErrStorage wraps failures reported by the underlying [Storage].
	ErrStorage = errors.New("boundchan: storage failure")

	// ErrInvalidCapacity is returned by [New] for a negative capacity.
	ErrInvalidCapacity = errors.New("boundchan: capacity must be non-negative")

	// ErrNoCases is returned by [Select] when called without cases.
	ErrNoCases = errors.New("boundchan: select requires at least one case")
)
