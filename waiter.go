package boundchan

import "sync/atomic"

const (
	waiterIdle int32 = iota
	waiterClaimed
)

// waiter is the private wake-up signal of one blocked Select call.
// Notifications coalesce: any number of notify calls before the
// selector wakes leave a single pending signal.
//
// On a rendezvous channel a peer completes the selector's operation
// itself and claims the waiter, recording the case index. Only one claim
// ever succeeds per registration round.
type waiter struct {
	c     chan struct{}
	state atomic.Int32
	index int // set by the claimer; read once the selector has unregistered
}

func newWaiter() *waiter {
	return &waiter{c: make(chan struct{}, 1)}
}

func (w *waiter) notify() {
	select {
	case w.c <- struct{}{}:
	default:
		// Already signaled.
	}
}

func (w *waiter) C() <-chan struct{} {
	return w.c
}

// claim marks w as satisfied by case index. It fails if another peer
// got there first.
func (w *waiter) claim(index int) bool {
	if !w.state.CompareAndSwap(waiterIdle, waiterClaimed) {
		return false
	}
	w.index = index
	return true
}

func (w *waiter) idle() bool {
	return w.state.Load() == waiterIdle
}

// claimed reports the case a peer completed. It must only be called
// after w has been removed from every channel.
func (w *waiter) claimed() (int, bool) {
	if w.state.Load() != waiterClaimed {
		return -1, false
	}
	return w.index, true
}

// reset prepares w for another registration round. w must not be
// registered anywhere.
func (w *waiter) reset() {
	w.state.Store(waiterIdle)
	select {
	case <-w.c:
	default:
	}
}

// registration is one select case waiting on a channel. v is the value
// of a send case; dst is the destination of a receive case.
type registration[T any] struct {
	index int
	v     T
	dst   *T
}

// waitSet holds the selectors registered on one direction of a channel.
type waitSet[T any] map[*waiter]*registration[T]

// notify wakes every registered selector except skip.
func (s waitSet[T]) notify(skip *waiter) {
	for w := range s {
		if w != skip {
			w.notify()
		}
	}
}

// claimable reports whether a selector other than skip could still be
// claimed.
func (s waitSet[T]) claimable(skip *waiter) bool {
	for w := range s {
		if w != skip && w.idle() {
			return true
		}
	}
	return false
}
