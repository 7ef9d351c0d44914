package boundchan

import "context"

// A rendezvous channel buffers nothing. A value moves from sender to
// receiver in one step under the channel lock, and only when the other
// side is already waiting: a parked Send (offers), a parked Receive
// (receivers) or a Select registered on the channel whose waiter can
// still be claimed.

// offer is the value of a sender parked on a rendezvous channel.
type offer[T any] struct {
	v     T
	taken bool
}

// slot is where a value is delivered to a receiver parked on a
// rendezvous channel.
type slot[T any] struct {
	v    T
	done bool
}

func (c *Channel[T]) sendRendezvous(ctx context.Context, v T) error {
	if c.handOff(v) {
		c.sent++
		return nil
	}

	o := &offer[T]{v: v}
	c.offers = append(c.offers, o)
	// A parked sender is what a receive selector needs.
	c.recvWaiters.notify(nil)

	for !o.taken {
		if c.closed {
			c.withdraw(o)
			return ErrClosed
		}
		if err := ctx.Err(); err != nil {
			c.withdraw(o)
			return err
		}
		c.blockedSenders++
		c.spaceAvailable.Wait()
		c.blockedSenders--
	}
	c.sent++
	return nil
}

func (c *Channel[T]) receiveRendezvous(ctx context.Context) (T, error) {
	var zero T
	if v, ok := c.take(); ok {
		c.received++
		return v, nil
	}

	r := &slot[T]{}
	c.receivers = append(c.receivers, r)
	// A parked receiver is what a send selector needs.
	c.sendWaiters.notify(nil)

	// A filled slot wins over close and cancellation: its sender has
	// already been told the value was delivered.
	for !r.done {
		if c.closed {
			c.dropReceiver(r)
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			c.dropReceiver(r)
			return zero, err
		}
		c.blockedReceivers++
		c.dataAvailable.Wait()
		c.blockedReceivers--
	}
	c.received++
	return r.v, nil
}

// handOff delivers v to a waiting receiver: the oldest parked Receive
// first, then any registered receive selector that can still be
// claimed. It reports false if nobody is waiting.
func (c *Channel[T]) handOff(v T) bool {
	if len(c.receivers) > 0 {
		r := c.receivers[0]
		c.receivers[0] = nil
		c.receivers = c.receivers[1:]
		r.v, r.done = v, true
		// The parked receiver is not necessarily the one a signal would
		// pick.
		c.dataAvailable.Broadcast()
		return true
	}

	for w, reg := range c.recvWaiters {
		if !w.claim(reg.index) {
			continue
		}
		delete(c.recvWaiters, w)
		if reg.dst != nil {
			*reg.dst = v
		}
		w.notify()
		return true
	}
	return false
}

// take removes a value from a waiting sender: the oldest parked Send
// first, then any registered send selector that can still be claimed.
func (c *Channel[T]) take() (T, bool) {
	if len(c.offers) > 0 {
		o := c.offers[0]
		c.offers[0] = nil
		c.offers = c.offers[1:]
		o.taken = true
		c.spaceAvailable.Broadcast()
		return o.v, true
	}

	for w, reg := range c.sendWaiters {
		if !w.claim(reg.index) {
			continue
		}
		delete(c.sendWaiters, w)
		w.notify()
		return reg.v, true
	}

	var zero T
	return zero, false
}

// withdraw removes the offer of a sender that gave up.
func (c *Channel[T]) withdraw(o *offer[T]) {
	for i, q := range c.offers {
		if q == o {
			c.offers = append(c.offers[:i], c.offers[i+1:]...)
			return
		}
	}
}

// dropReceiver removes the slot of a receiver that gave up.
func (c *Channel[T]) dropReceiver(r *slot[T]) {
	for i, q := range c.receivers {
		if q == r {
			c.receivers = append(c.receivers[:i], c.receivers[i+1:]...)
			return
		}
	}
}
