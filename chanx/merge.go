package chanx

import (
	"context"
	"slices"

	"github.com/baxromumarov/boundchan"
)

// Merge combines multiple input channels into a single output channel
// (fan-in). The order of values is non-deterministic.
//
// The output is a rendezvous channel: Merge moves on only after a
// consumer has taken each value, so closing the output never strands a
// merged value. The output channel is closed when every input is closed
// or the context is cancelled. Because close is terminal
// for boundchan channels, values still buffered in an input when it is
// closed are not forwarded.
func Merge[T any](ctx context.Context, chs ...*boundchan.Channel[T]) *boundchan.Channel[T] {
	out := mustRendezvous[T]()

	live := make([]*boundchan.Channel[T], 0, len(chs))
	for _, ch := range chs {
		if ch != nil {
			live = append(live, ch)
		}
	}

	go func() {
		defer func() { _ = out.Close() }()

		var v T
		for len(live) > 0 {
			cases := make([]boundchan.Case, len(live))
			for i, ch := range live {
				cases[i] = boundchan.RecvCase(ch, &v)
			}

			i, err := boundchan.SelectContext(ctx, cases...)
			if i < 0 {
				return
			}
			if err != nil {
				// Input closed or broken; stop listening to it.
				live = slices.Delete(live, i, i+1)
				continue
			}
			if err := Send(ctx, out, v); err != nil {
				return
			}
		}
	}()

	return out
}

// FanOut distributes values from in across n output channels in
// round-robin order. Each output channel is closed when in is closed,
// the context is cancelled or a consumer closes one of the outputs.
//
// This is useful for distributing work to a fixed set of workers.
// FanOut panics if n is not positive.
func FanOut[T any](ctx context.Context, in *boundchan.Channel[T], n int) []*boundchan.Channel[T] {
	if n <= 0 {
		panic("chanx: FanOut requires n > 0")
	}

	outs := make([]*boundchan.Channel[T], n)
	for i := range outs {
		outs[i] = mustRendezvous[T]()
	}

	go func() {
		defer closeAll(outs)

		for idx := 0; ; idx++ {
			v, err := Recv(ctx, in)
			if err != nil {
				return
			}
			if err := Send(ctx, outs[idx%n], v); err != nil {
				return
			}
		}
	}()

	return outs
}

func mustRendezvous[T any]() *boundchan.Channel[T] {
	ch, err := boundchan.New[T](0)
	if err != nil {
		// A ring of capacity zero cannot fail to allocate.
		panic(err)
	}
	return ch
}

func closeAll[T any](chs []*boundchan.Channel[T]) {
	for _, ch := range chs {
		_ = ch.Close()
	}
}
