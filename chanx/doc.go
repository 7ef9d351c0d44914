// Package chanx provides context-aware helpers built on
// [github.com/baxromumarov/boundchan] channels.
//
// boundchan channels block without a context and report close as
// [boundchan.ErrClosed]. chanx layers the usual pipeline patterns on
// top, using [boundchan.SelectContext] so every blocking step can be
// abandoned on cancellation:
//
//   - [Send] and [Recv]: context-aware send and receive.
//   - [SendBatch] and [RecvBatch]: send or receive multiple values in one
//     call, stopping early on cancellation or channel close.
//   - [Drain]: discards buffered values without blocking.
//   - [First]: returns the first value from any of several channels.
//   - [Merge]: fan-in that combines multiple channels into one.
//   - [FanOut]: distributes values from one channel across N channels.
//   - [Tee]: broadcasts every value to N output channels.
//
// Helpers that spawn goroutines close their output channels when the
// inputs are closed or ctx is canceled, so they never outlive either.
package chanx
