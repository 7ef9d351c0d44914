package boundchan

// Stats is a point-in-time snapshot of channel activity.
type Stats struct {
	Name             string
	Capacity         int
	Len              int    // buffered items, always 0 on a rendezvous channel
	Closed           bool
	Sent             uint64 // completed sends, blocking and non-blocking
	Received         uint64 // completed receives, blocking and non-blocking
	BlockedSenders   int    // goroutines parked in Send
	BlockedReceivers int    // goroutines parked in Receive
	SelectWaiters    int    // blocked Select registrations, both directions
	PendingOffers    int    // rendezvous senders parked with a value not yet taken
}

// Stats returns a snapshot of the channel counters.
// Safe to call concurrently.
func (c *Channel[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Name:             c.cfg.name,
		Capacity:         c.capacity,
		Len:              c.lenLocked(),
		Closed:           c.closed,
		Sent:             c.sent,
		Received:         c.received,
		BlockedSenders:   c.blockedSenders,
		BlockedReceivers: c.blockedReceivers,
		SelectWaiters:    len(c.sendWaiters) + len(c.recvWaiters),
		PendingOffers:    len(c.offers),
	}
}
