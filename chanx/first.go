package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/boundchan"
)

// ErrNoChannels is returned by [First] when no non-nil channel is given.
var ErrNoChannels = errors.New("chanx: no channels")

// First receives one value from whichever of chs is ready first and
// returns it with the index of that channel in chs. Nil channels are
// skipped. If the winning channel is closed, First returns its index and
// [boundchan.ErrClosed]; if ctx is canceled while waiting, it returns -1
// and the context error.
func First[T any](ctx context.Context, chs ...*boundchan.Channel[T]) (T, int, error) {
	var zero T

	// Map select case positions back to positions in chs.
	idx := make([]int, 0, len(chs))
	for i, ch := range chs {
		if ch != nil {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return zero, -1, ErrNoChannels
	}

	vals := make([]T, len(idx))
	cases := make([]boundchan.Case, len(idx))
	for k, i := range idx {
		cases[k] = boundchan.RecvCase(chs[i], &vals[k])
	}

	k, err := boundchan.SelectContext(ctx, cases...)
	if k < 0 {
		return zero, -1, err
	}
	if err != nil {
		return zero, idx[k], boundchan.CauseOf(err)
	}
	return vals[k], idx[k], nil
}
