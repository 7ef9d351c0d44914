// Package boundchan provides a bounded, goroutine-safe message channel
// with explicit close and destroy, plus a multi-channel select.
//
// Unlike a native Go channel, a [Channel] reports every failure as an
// error instead of panicking: sending on a closed channel returns
// [ErrClosed], closing twice returns [ErrClosed], and non-blocking
// operations return [ErrFull] or [ErrEmpty] rather than requiring a
// select with a default branch.
//
// # Channels
//
// Create a channel with [New]. Capacity zero creates a rendezvous
// channel where every send is matched by a waiting receiver:
//
//	ch, err := boundchan.New[string](2)
//	if err != nil {
//	    return err
//	}
//	_ = ch.Send("a")            // blocks while full
//	v, err := ch.Receive()      // blocks while empty
//	err = ch.TrySend("b")       // ErrFull instead of blocking
//	_, err = ch.TryReceive()    // ErrEmpty instead of blocking
//
// [NewWithStorage] plugs in any [Storage]; the default is
// [github.com/baxromumarov/boundchan/ring.Buffer].
//
// # Close and Destroy
//
// [Channel.Close] is terminal and eager: it wakes every blocked sender,
// receiver and selector, and from then on every operation returns
// [ErrClosed], even if items are still buffered. Buffered items are not
// drained after close.
//
// [Channel.Destroy] releases the storage of a closed channel and returns
// [ErrNotClosed] on an open one. The caller must make sure no goroutine
// is still using the channel.
//
// # Select
//
// [Select] waits on the first ready case across channels of any item
// types:
//
//	var n int
//	var s string
//	i, err := boundchan.Select(
//	    boundchan.RecvCase(ints, &n),
//	    boundchan.RecvCase(strs, &s),
//	    boundchan.SendCase(out, 42),
//	)
//
// The lowest-indexed ready case wins. A closed channel counts as ready
// and yields a [*CaseError] wrapping [ErrClosed]; use [IndexOf] and
// [CauseOf] to inspect it. [SelectContext] adds cancellation while
// blocked.
//
// # Observability
//
//   - [WithName]: label used in logs, events, stats and metrics.
//   - [WithLogger]: logrus logger for lifecycle and storage failures.
//   - [WithOnEvent]: hook receiving an [Event] on close, destroy and
//     storage failure. A panicking hook is recovered and logged.
//   - [Channel.Stats]: point-in-time [Stats] snapshot.
//
// The [github.com/baxromumarov/boundchan/chanmetrics] subpackage exports
// Stats as Prometheus metrics, and
// [github.com/baxromumarov/boundchan/chanx] provides batching, draining,
// fan-in and fan-out helpers built on Channel and Select.
package boundchan
