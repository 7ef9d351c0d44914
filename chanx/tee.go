package chanx

import (
	"context"

	"github.com/baxromumarov/boundchan"
)

// Tee broadcasts every value from in to n independent output channels.
// All outputs receive every value, in output order. The output channels
// are closed when in is closed, the context is cancelled or any output
// is closed by its consumer.
//
// Warning: if any consumer is slow, it blocks the broadcast to all others.
// Tee panics if n is not positive.
func Tee[T any](ctx context.Context, in *boundchan.Channel[T], n int) []*boundchan.Channel[T] {
	if n <= 0 {
		panic("chanx: Tee requires n > 0")
	}

	outs := make([]*boundchan.Channel[T], n)
	for i := range outs {
		outs[i] = mustRendezvous[T]()
	}

	go func() {
		defer closeAll(outs)

		for {
			v, err := Recv(ctx, in)
			if err != nil {
				return
			}
			for _, out := range outs {
				if err := Send(ctx, out, v); err != nil {
					return
				}
			}
		}
	}()

	return outs
}
