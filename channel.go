package boundchan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/baxromumarov/boundchan/ring"
	"github.com/sirupsen/logrus"
)

// Storage is the fixed-capacity FIFO a [Channel] buffers items in.
// Every call is made with the channel lock held, so implementations need
// not be safe for concurrent use. [ring.Buffer] is the default.
type Storage[T any] interface {
	// Add appends v, failing when Len() == Cap().
	Add(v T) error
	// Remove pops the oldest item, failing when Len() == 0.
	Remove() (T, error)
	Len() int
	Cap() int
	// Free releases the storage. It is called once, by [Channel.Destroy].
	Free() error
}

// Channel is a bounded, goroutine-safe FIFO of T with explicit close.
//
// A Channel is a monitor: one mutex guards the storage and the closed
// flag, and two conditions park blocked senders (spaceAvailable) and
// blocked receivers (dataAvailable). Selectors blocked in [Select]
// register a private waiter per direction instead of parking on the
// conditions, so a Channel never needs another Channel's lock.
//
// A capacity of zero makes a rendezvous channel: nothing is ever
// buffered, and every value passes directly from a sender to a receiver
// that is waiting at that moment. [Channel.Send] returns only after a
// receiver has taken the value, and [Channel.TrySend] succeeds only while
// a receiver is waiting.
//
// Close is terminal. Once closed, every operation returns [ErrClosed],
// including receives on a channel that still holds buffered items.
type Channel[T any] struct {
	mu             sync.Mutex
	spaceAvailable *sync.Cond
	dataAvailable  *sync.Cond

	storage  Storage[T]
	capacity int
	closed   bool

	// Rendezvous only: parked senders' values and parked receivers'
	// slots. At most one of the two is non-empty.
	offers    []*offer[T]
	receivers []*slot[T]

	sendWaiters waitSet[T]
	recvWaiters waitSet[T]

	blockedSenders   int
	blockedReceivers int

	sent     uint64
	received uint64

	cfg config
	log logrus.FieldLogger
}

// New creates a channel buffering at most capacity items in a
// [ring.Buffer]. Capacity zero creates a rendezvous channel.
//
// New returns [ErrInvalidCapacity] for a negative capacity, and an error
// wrapping [ErrStorage] if the storage cannot be created.
func New[T any](capacity int, opts ...Option) (*Channel[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	s, err := ring.New[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return NewWithStorage[T](s, opts...), nil
}

// NewWithStorage creates a channel on top of s. The channel capacity is
// s.Cap(), read once. Items already in s are delivered first.
//
// NewWithStorage panics if s is nil.
func NewWithStorage[T any](s Storage[T], opts ...Option) *Channel[T] {
	if s == nil {
		panic("boundchan: NewWithStorage requires non-nil storage")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Channel[T]{
		storage:     s,
		capacity:    s.Cap(),
		sendWaiters: make(waitSet[T]),
		recvWaiters: make(waitSet[T]),
		cfg:         cfg,
		log:         cfg.logger,
	}
	if cfg.name != "" {
		c.log = cfg.logger.WithField("channel", cfg.name)
	}
	c.spaceAvailable = sync.NewCond(&c.mu)
	c.dataAvailable = sync.NewCond(&c.mu)
	return c
}

// Send enqueues v, blocking while the channel is full.
//
// It returns [ErrClosed] if the channel is closed on entry or is closed
// while Send is blocked, and an error wrapping [ErrStorage] if the
// storage rejects the item. On a rendezvous channel Send blocks until a
// receiver has taken v.
func (c *Channel[T]) Send(v T) error {
	c.mu.Lock()
	err := c.send(context.Background(), v)
	c.mu.Unlock()

	c.reportStorage(err)
	return err
}

// SendContext is like [Channel.Send] but gives up when ctx is done while
// blocked, returning ctx.Err(). On a rendezvous channel a canceled
// sender withdraws its offer.
func (c *Channel[T]) SendContext(ctx context.Context, v T) error {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.spaceAvailable.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	err := c.send(ctx, v)
	c.mu.Unlock()

	c.reportStorage(err)
	return err
}

func (c *Channel[T]) send(ctx context.Context, v T) error {
	if c.closed {
		return ErrClosed
	}
	if c.capacity == 0 {
		return c.sendRendezvous(ctx, v)
	}

	for c.storage.Len() >= c.capacity {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.blockedSenders++
		c.spaceAvailable.Wait()
		c.blockedSenders--

		if c.closed {
			return ErrClosed
		}
	}

	if err := c.push(v); err != nil {
		return err
	}
	c.sent++
	// Any number of receivers and selectors may be parked.
	c.wakeReceivers(true)
	return nil
}

// Receive dequeues the oldest item, blocking while the channel is empty.
//
// It returns [ErrClosed] if the channel is closed on entry or is closed
// while Receive is blocked, and an error wrapping [ErrStorage] if the
// storage fails to yield an item.
func (c *Channel[T]) Receive() (T, error) {
	c.mu.Lock()
	v, err := c.receive(context.Background())
	c.mu.Unlock()

	c.reportStorage(err)
	return v, err
}

// ReceiveContext is like [Channel.Receive] but gives up when ctx is done
// while blocked, returning ctx.Err().
func (c *Channel[T]) ReceiveContext(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.dataAvailable.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	v, err := c.receive(ctx)
	c.mu.Unlock()

	c.reportStorage(err)
	return v, err
}

func (c *Channel[T]) receive(ctx context.Context) (T, error) {
	var zero T
	if c.closed {
		return zero, ErrClosed
	}
	if c.capacity == 0 {
		return c.receiveRendezvous(ctx)
	}

	for c.storage.Len() == 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		c.blockedReceivers++
		c.dataAvailable.Wait()
		c.blockedReceivers--

		if c.closed {
			return zero, ErrClosed
		}
	}

	v, err := c.pop()
	if err != nil {
		return zero, err
	}
	c.received++
	c.wakeSenders(true)
	return v, nil
}

// TrySend enqueues v without blocking. It returns [ErrFull] and leaves
// the channel untouched if the send would block, [ErrClosed] if the
// channel is closed, and an error wrapping [ErrStorage] if the storage
// rejects the item.
//
// On a rendezvous channel TrySend succeeds only by handing v directly to
// a receiver that is already waiting.
func (c *Channel[T]) TrySend(v T) error {
	c.mu.Lock()
	err := c.trySend(v)
	c.mu.Unlock()

	c.reportStorage(err)
	return err
}

func (c *Channel[T]) trySend(v T) error {
	if c.closed {
		return ErrClosed
	}
	if c.capacity == 0 {
		if !c.handOff(v) {
			return ErrFull
		}
		c.sent++
		return nil
	}
	if c.storage.Len() >= c.capacity {
		return ErrFull
	}
	if err := c.push(v); err != nil {
		return err
	}
	c.sent++
	// Exactly one item became available.
	c.wakeReceivers(false)
	return nil
}

// TryReceive dequeues the oldest item without blocking. It returns
// [ErrEmpty] and leaves the channel untouched if the receive would
// block, [ErrClosed] if the channel is closed, and an error wrapping
// [ErrStorage] if the storage fails to yield an item.
//
// On a rendezvous channel TryReceive succeeds only by taking the value
// of a sender that is already waiting.
func (c *Channel[T]) TryReceive() (T, error) {
	c.mu.Lock()
	v, err := c.tryReceive()
	c.mu.Unlock()

	c.reportStorage(err)
	return v, err
}

func (c *Channel[T]) tryReceive() (T, error) {
	var zero T
	if c.closed {
		return zero, ErrClosed
	}
	if c.capacity == 0 {
		v, ok := c.take()
		if !ok {
			return zero, ErrEmpty
		}
		c.received++
		return v, nil
	}
	if c.storage.Len() == 0 {
		return zero, ErrEmpty
	}

	v, err := c.pop()
	if err != nil {
		return zero, err
	}
	c.received++
	// Exactly one slot became free.
	c.wakeSenders(false)
	return v, nil
}

// Close marks the channel closed and wakes every blocked sender,
// receiver and selector; each of them returns [ErrClosed]. Closing an
// already closed channel returns [ErrClosed].
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	c.closed = true
	c.spaceAvailable.Broadcast()
	c.dataAvailable.Broadcast()
	c.sendWaiters.notify(nil)
	c.recvWaiters.notify(nil)

	ev := c.eventLocked(EventClosed, nil)
	c.mu.Unlock()

	c.emit(ev)
	return nil
}

// Destroy releases the channel storage. It returns [ErrNotClosed] and
// leaves the channel usable if the channel is still open.
//
// The caller must make sure no goroutine is inside Send, Receive, their
// non-blocking variants or [Select] on this channel; Destroy does not
// wait for them. Destroying twice returns the storage's error wrapped in
// [ErrStorage].
func (c *Channel[T]) Destroy() error {
	c.mu.Lock()
	if !c.closed {
		c.mu.Unlock()
		return ErrNotClosed
	}

	n := c.lenLocked()
	err := c.storage.Free()
	c.offers = nil
	c.receivers = nil
	c.mu.Unlock()

	if err != nil {
		err = fmt.Errorf("%w: %w", ErrStorage, err)
		c.reportStorage(err)
		return err
	}

	c.emit(Event{
		Kind:     EventDestroyed,
		Name:     c.cfg.name,
		Capacity: c.capacity,
		Len:      n,
	})
	return nil
}

// Len returns the number of buffered items, between 0 and Cap(). A
// rendezvous channel never buffers, so its Len is always 0; parked
// senders are reported by [Stats] as PendingOffers.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lenLocked()
}

// Cap returns the channel capacity.
func (c *Channel[T]) Cap() int {
	return c.capacity
}

// IsClosed reports whether [Channel.Close] has been called.
func (c *Channel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}


// The helpers below require c.mu to be held.

func (c *Channel[T]) lenLocked() int {
	return c.storage.Len()
}

// canSendExcept reports whether a send would complete now, ignoring the
// selector w so that a selector listing both directions of a rendezvous
// channel never pairs with itself.
func (c *Channel[T]) canSendExcept(w *waiter) bool {
	if c.capacity == 0 {
		return len(c.receivers) > 0 || c.recvWaiters.claimable(w)
	}
	return c.storage.Len() < c.capacity
}

// canRecvExcept is the receive-side counterpart of canSendExcept.
func (c *Channel[T]) canRecvExcept(w *waiter) bool {
	if c.capacity == 0 {
		return len(c.offers) > 0 || c.sendWaiters.claimable(w)
	}
	return c.storage.Len() > 0
}

func (c *Channel[T]) push(v T) error {
	if err := c.storage.Add(v); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (c *Channel[T]) pop() (T, error) {
	v, err := c.storage.Remove()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return v, nil
}

func (c *Channel[T]) wakeReceivers(broadcast bool) {
	if broadcast {
		c.dataAvailable.Broadcast()
	} else {
		c.dataAvailable.Signal()
	}
	c.recvWaiters.notify(nil)
}

func (c *Channel[T]) wakeSenders(broadcast bool) {
	if broadcast {
		c.spaceAvailable.Broadcast()
	} else {
		c.spaceAvailable.Signal()
	}
	c.sendWaiters.notify(nil)
}

func (c *Channel[T]) eventLocked(kind EventKind, err error) Event {
	return Event{
		Kind:     kind,
		Name:     c.cfg.name,
		Capacity: c.capacity,
		Len:      c.lenLocked(),
		Err:      err,
	}
}

// reportStorage emits EventStorageError for storage failures. It must
// be called without c.mu held.
func (c *Channel[T]) reportStorage(err error) {
	if err == nil || !errors.Is(err, ErrStorage) {
		return
	}

	c.mu.Lock()
	ev := c.eventLocked(EventStorageError, err)
	c.mu.Unlock()

	c.emit(ev)
}
