// Package chanmetrics exports [boundchan.Channel] statistics as
// Prometheus metrics.
//
// A Collector holds a set of named channels and reads a fresh
// [boundchan.Stats] snapshot from each one on every scrape:
//
//	c := chanmetrics.NewCollector("app")
//	_ = c.Add(jobs)
//	prometheus.MustRegister(c)
package chanmetrics

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/baxromumarov/boundchan"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrEmptyName is returned when a channel is added without a name.
	ErrEmptyName = errors.New("chanmetrics: channel name must not be empty")

	// ErrDuplicate is returned when a name is already registered.
	ErrDuplicate = errors.New("chanmetrics: channel already registered")
)

// StatsSource is anything that can report channel statistics.
// *boundchan.Channel[T] satisfies it for every T.
type StatsSource interface {
	Stats() boundchan.Stats
}

// Collector is a prometheus.Collector over a set of channels. Each
// metric carries a "channel" label holding the channel name.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource

	length           *prometheus.Desc
	capacity         *prometheus.Desc
	closed           *prometheus.Desc
	sent             *prometheus.Desc
	received         *prometheus.Desc
	blockedSenders   *prometheus.Desc
	blockedReceivers *prometheus.Desc
	selectWaiters    *prometheus.Desc
	pendingOffers    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns an empty Collector whose metric names are prefixed
// with namespace (which may be empty).
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "boundchan", name),
			help,
			[]string{"channel"},
			nil,
		)
	}

	return &Collector{
		sources:          make(map[string]StatsSource),
		length:           desc("len", "Number of items currently buffered."),
		capacity:         desc("capacity", "Maximum number of buffered items."),
		closed:           desc("closed", "1 if the channel is closed, 0 otherwise."),
		sent:             desc("sent_total", "Items successfully sent."),
		received:         desc("received_total", "Items successfully received."),
		blockedSenders:   desc("blocked_senders", "Senders parked in a blocking send."),
		blockedReceivers: desc("blocked_receivers", "Receivers parked in a blocking receive."),
		selectWaiters:    desc("select_waiters", "Select calls registered on the channel."),
		pendingOffers:    desc("pending_offers", "Rendezvous senders parked with a value not yet taken."),
	}
}

// Add registers src under its own Stats().Name. It returns [ErrEmptyName]
// if the channel has no name and an error wrapping [ErrDuplicate] if the
// name is already in use.
func (c *Collector) Add(src StatsSource) error {
	return c.AddNamed(src.Stats().Name, src)
}

// AddNamed registers src under name, overriding the name the channel was
// created with.
func (c *Collector) AddNamed(name string, src StatsSource) error {
	if name == "" {
		return ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sources[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	c.sources[name] = src
	return nil
}

// Remove stops collecting the channel registered under name. It reports
// whether a channel was removed.
func (c *Collector) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.sources[name]
	delete(c.sources, name)
	return ok
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.closed
	ch <- c.sent
	ch <- c.received
	ch <- c.blockedSenders
	ch <- c.blockedReceivers
	ch <- c.selectWaiters
	ch <- c.pendingOffers
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sources := make([]StatsSource, len(names))
	sort.Strings(names)
	for i, name := range names {
		sources[i] = c.sources[name]
	}
	c.mu.RUnlock()

	for i, src := range sources {
		s := src.Stats()
		name := names[i]

		closed := 0.0
		if s.Closed {
			closed = 1
		}

		ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(s.Len), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.closed, prometheus.GaugeValue, closed, name)
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(s.Sent), name)
		ch <- prometheus.MustNewConstMetric(c.received, prometheus.CounterValue, float64(s.Received), name)
		ch <- prometheus.MustNewConstMetric(c.blockedSenders, prometheus.GaugeValue, float64(s.BlockedSenders), name)
		ch <- prometheus.MustNewConstMetric(c.blockedReceivers, prometheus.GaugeValue, float64(s.BlockedReceivers), name)
		ch <- prometheus.MustNewConstMetric(c.selectWaiters, prometheus.GaugeValue, float64(s.SelectWaiters), name)
		ch <- prometheus.MustNewConstMetric(c.pendingOffers, prometheus.GaugeValue, float64(s.PendingOffers), name)
	}
}
