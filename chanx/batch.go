package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/boundchan"
)

// SendBatch sends each value in values to ch, stopping on the first
// error. It returns the number of values sent and nil if all values were
// sent, or the count so far and the error ([boundchan.ErrClosed] or the
// context error).
//
// SendBatch is a convenience wrapper around [Send].
func SendBatch[T any](ctx context.Context, ch *boundchan.Channel[T], values []T) (int, error) {
	for i, v := range values {
		if err := Send(ctx, ch, v); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// RecvBatch receives up to n values from ch. It returns the collected
// values and nil on success, or the collected values so far and the
// context error if ctx is cancelled. If ch is closed before n values
// are received, it returns the values received so far with a nil error.
//
// RecvBatch panics if n is not positive.
func RecvBatch[T any](ctx context.Context, ch *boundchan.Channel[T], n int) ([]T, error) {
	if n <= 0 {
		panic("chanx: RecvBatch requires n > 0")
	}
	result := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := Recv(ctx, ch)
		if errors.Is(err, boundchan.ErrClosed) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result = append(result, v)
	}
	return result, nil
}
