// Package ring provides the fixed-capacity FIFO storage behind
// boundchan channels.
//
// A [Buffer] is not safe for concurrent use; the owning channel
// serializes every call under its own lock.
package ring

import (
	"errors"

	"github.com/eapache/queue"
)

var (
	// ErrFull is returned by [Buffer.Add] when the buffer holds Cap items.
	ErrFull = errors.New("ring: buffer is full")

	// ErrEmpty is returned by [Buffer.Remove] when the buffer holds no items.
	ErrEmpty = errors.New("ring: buffer is empty")

	// ErrFreed is returned by every mutating call after [Buffer.Free].
	ErrFreed = errors.New("ring: buffer has been freed")

	// ErrInvalidCapacity is returned by [New] for a negative capacity.
	ErrInvalidCapacity = errors.New("ring: capacity must be non-negative")
)

// Buffer is a bounded FIFO of T backed by a growable ring queue.
// The ring itself never holds more than Cap items.
type Buffer[T any] struct {
	q        *queue.Queue
	capacity int
	freed    bool
}

// New creates an empty buffer holding at most capacity items.
// A capacity of zero is valid; such a buffer is always full.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	return &Buffer[T]{
		q:        queue.New(),
		capacity: capacity,
	}, nil
}

// Add appends v at the tail. It returns [ErrFull] without modifying the
// buffer when Len == Cap.
func (b *Buffer[T]) Add(v T) error {
	if b.freed {
		return ErrFreed
	}
	if b.q.Length() >= b.capacity {
		return ErrFull
	}
	b.q.Add(v)
	return nil
}

// Remove pops the item at the head. It returns [ErrEmpty] when Len == 0.
func (b *Buffer[T]) Remove() (T, error) {
	var zero T
	if b.freed {
		return zero, ErrFreed
	}
	if b.q.Length() == 0 {
		return zero, ErrEmpty
	}
	// A nil interface stored as T comes back as nil; the comma-ok form
	// maps it to the zero value instead of panicking.
	v, _ := b.q.Remove().(T)
	return v, nil
}

// Len returns the number of buffered items.
func (b *Buffer[T]) Len() int {
	if b.freed {
		return 0
	}
	return b.q.Length()
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return b.capacity
}

// Free drops every buffered item and releases the ring.
// Calling Free twice returns [ErrFreed].
func (b *Buffer[T]) Free() error {
	if b.freed {
		return ErrFreed
	}
	b.freed = true
	b.q = nil
	return nil
}
