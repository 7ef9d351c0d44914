package boundchan

import (
	"context"
	"errors"
	"fmt"
)

// Op is the operation a select [Case] performs.
type Op int

const (
	// OpSend sends a value on the case's channel.
	OpSend Op = iota
	// OpRecv receives a value from the case's channel.
	OpRecv
)

func (o Op) String() string {
	switch o {
	case OpSend:
		return "send"
	case OpRecv:
		return "recv"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Case is one entry of a [Select] call. Build cases with [SendCase] and
// [RecvCase]; cases over channels of different item types may be mixed
// in one call.
type Case interface {
	// Op reports the direction of the case.
	Op() Op

	// try performs the operation if it can complete without blocking.
	// fired is true when the case resolved, successfully or with err.
	try() (fired bool, err error)

	// register subscribes w, as case index, to readiness changes unless
	// the case is already ready (or its channel closed), in which case it
	// reports true and leaves w unregistered.
	register(w *waiter, index int) (ready bool)

	unregister(w *waiter)
}

type sendCase[T any] struct {
	ch *Channel[T]
	v  T
}

// SendCase returns a case that sends v on ch.
//
// SendCase panics if ch is nil.
func SendCase[T any](ch *Channel[T], v T) Case {
	if ch == nil {
		panic("boundchan: SendCase requires non-nil channel")
	}
	return &sendCase[T]{ch: ch, v: v}
}

func (sc *sendCase[T]) Op() Op { return OpSend }

func (sc *sendCase[T]) try() (bool, error) {
	err := sc.ch.TrySend(sc.v)
	if errors.Is(err, ErrFull) {
		return false, nil
	}
	return true, err
}

func (sc *sendCase[T]) register(w *waiter, index int) bool {
	return sc.ch.register(w, OpSend, &registration[T]{index: index, v: sc.v})
}

func (sc *sendCase[T]) unregister(w *waiter) {
	sc.ch.unregister(w, OpSend)
}

type recvCase[T any] struct {
	ch  *Channel[T]
	dst *T
}

// RecvCase returns a case that receives from ch and stores the value in
// *dst. A nil dst discards the value.
//
// RecvCase panics if ch is nil.
func RecvCase[T any](ch *Channel[T], dst *T) Case {
	if ch == nil {
		panic("boundchan: RecvCase requires non-nil channel")
	}
	return &recvCase[T]{ch: ch, dst: dst}
}

func (rc *recvCase[T]) Op() Op { return OpRecv }

func (rc *recvCase[T]) try() (bool, error) {
	v, err := rc.ch.TryReceive()
	if errors.Is(err, ErrEmpty) {
		return false, nil
	}
	if err == nil && rc.dst != nil {
		*rc.dst = v
	}
	return true, err
}

func (rc *recvCase[T]) register(w *waiter, index int) bool {
	return rc.ch.register(w, OpRecv, &registration[T]{index: index, dst: rc.dst})
}

func (rc *recvCase[T]) unregister(w *waiter) {
	rc.ch.unregister(w, OpRecv)
}

// Select performs exactly one of the given cases and returns its index.
//
// Cases are examined in order and the first one that can complete
// without blocking wins, so a lower index takes priority whenever
// several cases are ready at once. A case whose channel is closed counts
// as ready and resolves to an error wrapping [ErrClosed]; storage
// failures resolve to an error wrapping [ErrStorage]. Either way the
// error is a [*CaseError] carrying the index, which is also returned.
//
// If no case is ready, Select blocks until one becomes ready and then
// repeats the scan. It never holds two channel locks at once and never
// polls. While blocked on a rendezvous channel, the selector can be
// completed directly by a peer, in which case exactly one of its cases
// has fired and Select returns that index.
//
// Select returns -1 and [ErrNoCases] when called without cases, and
// panics if any case is nil.
func Select(cases ...Case) (int, error) {
	return SelectContext(context.Background(), cases...)
}

// SelectContext is like [Select] but gives up when ctx is done while
// blocked, returning -1 and ctx.Err(). A ready case is always preferred
// over a done context.
func SelectContext(ctx context.Context, cases ...Case) (int, error) {
	if len(cases) == 0 {
		return -1, ErrNoCases
	}
	for i, cs := range cases {
		if cs == nil {
			panic(fmt.Sprintf("boundchan: Select case[%d] must not be nil", i))
		}
	}

	var w *waiter
	for {
		if i, ok, err := sweep(cases); ok {
			return i, err
		}

		if w == nil {
			w = newWaiter()
		} else {
			w.reset()
		}

		// If something became ready between the sweep and the
		// registration, skip the wait and scan again.
		canceled := false
		if !registerAll(cases, w) {
			select {
			case <-w.C():
			case <-ctx.Done():
				canceled = true
			}
		}
		unregisterAll(cases, w)

		// Once unregistered nobody can claim w, so its state is final.
		if i, ok := w.claimed(); ok {
			return i, nil
		}
		if canceled {
			return -1, ctx.Err()
		}
	}
}

// sweep tries every case once, in order, taking one channel lock at a
// time.
func sweep(cases []Case) (int, bool, error) {
	for i, cs := range cases {
		fired, err := cs.try()
		if !fired {
			continue
		}
		if err != nil {
			return i, true, &CaseError{Index: i, Op: cs.Op(), Err: err}
		}
		return i, true, nil
	}
	return -1, false, nil
}

// registerAll subscribes w to every case. It stops at the first case
// that is already ready and reports true.
func registerAll(cases []Case, w *waiter) bool {
	for i, cs := range cases {
		if cs.register(w, i) {
			return true
		}
	}
	return false
}

func unregisterAll(cases []Case, w *waiter) {
	for _, cs := range cases {
		cs.unregister(w)
	}
}

func (c *Channel[T]) register(w *waiter, op Op, reg *registration[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}

	switch op {
	case OpSend:
		if c.canSendExcept(w) {
			return true
		}
		if _, ok := c.sendWaiters[w]; !ok {
			c.sendWaiters[w] = reg
		}
		if c.capacity == 0 {
			// A claimable sender makes rendezvous receive selectors
			// ready. The selector's own receive cases must not wake it.
			c.recvWaiters.notify(w)
		}
	case OpRecv:
		if c.canRecvExcept(w) {
			return true
		}
		// The lowest index wins when one selector lists a channel twice.
		if _, ok := c.recvWaiters[w]; !ok {
			c.recvWaiters[w] = reg
		}
		if c.capacity == 0 {
			c.sendWaiters.notify(w)
		}
	}
	return false
}

func (c *Channel[T]) unregister(w *waiter, op Op) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch op {
	case OpSend:
		delete(c.sendWaiters, w)
	case OpRecv:
		delete(c.recvWaiters, w)
	}
}
