package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTee_BasicFunctionality(t *testing.T) {
	ctx := context.Background()
	in := newChan[int](t, 0)

	var producers conc.WaitGroup
	produce(&producers, in, 1, 2, 3)

	outs := Tee(ctx, in, 2)
	require.Len(t, outs, 2)

	results := make([][]int, len(outs))
	var consumers conc.WaitGroup
	for i, out := range outs {
		consumers.Go(func() {
			results[i] = collect(t, out, 2*time.Second)
		})
	}
	consumers.Wait()
	producers.Wait()

	for _, r := range results {
		assert.Equal(t, []int{1, 2, 3}, r)
	}
}

func TestTee_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := newChan[int](t, 1)

	outs := Tee(ctx, in, 3)
	cancel()

	for _, out := range outs {
		require.Eventually(t, out.IsClosed, time.Second, time.Millisecond)
	}
}

func TestTee_Panics(t *testing.T) {
	in := newChan[int](t, 1)
	assert.PanicsWithValue(t, "chanx: Tee requires n > 0", func() {
		Tee(context.Background(), in, -1)
	})
}
