package chanx

import (
	"context"

	"github.com/baxromumarov/boundchan"
)

// Send sends v to ch, unblocking early if ctx is canceled.
// It returns nil on successful send, [boundchan.ErrClosed] if ch is
// closed, or the context error if canceled.
//
// On a rendezvous channel Send returns only once a receiver has taken v.
func Send[T any](ctx context.Context, ch *boundchan.Channel[T], v T) error {
	return ch.SendContext(ctx, v)
}

// Recv receives a value from ch, unblocking early if ctx is canceled.
// It returns the value and nil, [boundchan.ErrClosed] if ch is closed,
// or the context error if canceled.
func Recv[T any](ctx context.Context, ch *boundchan.Channel[T]) (T, error) {
	return ch.ReceiveContext(ctx)
}
