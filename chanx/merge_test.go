package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/baxromumarov/boundchan"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// produce sends values on ch and closes it. ch must be a rendezvous
// channel so that every value is taken before the close.
func produce(wg *conc.WaitGroup, ch *boundchan.Channel[int], values ...int) {
	wg.Go(func() {
		for _, v := range values {
			if ch.Send(v) != nil {
				return
			}
		}
		_ = ch.Close()
	})
}

func TestMerge_BasicFunctionality(t *testing.T) {
	ctx := context.Background()
	ch1 := newChan[int](t, 0)
	ch2 := newChan[int](t, 0)

	var wg conc.WaitGroup
	produce(&wg, ch1, 1, 2)
	produce(&wg, ch2, 3, 4)

	out := Merge(ctx, ch1, ch2)
	received := collect(t, out, 2*time.Second)
	wg.Wait()

	assert.ElementsMatch(t, []int{1, 2, 3, 4}, received)
	assert.True(t, out.IsClosed())
}

func TestMerge_NoChannels(t *testing.T) {
	out := Merge[int](context.Background())

	assert.Empty(t, collect(t, out, time.Second))
}

func TestMerge_ManyProducers(t *testing.T) {
	const producers = 8
	ins := make([]*boundchan.Channel[int], producers)

	var wg conc.WaitGroup
	want := make([]int, 0, producers*10)
	for p := range producers {
		ins[p] = newChan[int](t, 0)
		vals := make([]int, 10)
		for i := range vals {
			vals[i] = p*100 + i
		}
		want = append(want, vals...)
		produce(&wg, ins[p], vals...)
	}

	out := Merge(context.Background(), ins...)
	got := collect(t, out, 5*time.Second)
	wg.Wait()

	assert.ElementsMatch(t, want, got)
}

func TestMerge_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := newChan[int](t, 1)

	out := Merge(ctx, in)
	cancel()

	require.Eventually(t, out.IsClosed, time.Second, time.Millisecond)
	assert.False(t, in.IsClosed(), "Merge never closes its inputs")
}

func TestFanOut(t *testing.T) {
	ctx := context.Background()
	in := newChan[int](t, 0)
	var wg conc.WaitGroup
	produce(&wg, in, 0, 1, 2, 3, 4, 5)

	outs := FanOut(ctx, in, 3)
	require.Len(t, outs, 3)

	// Round-robin: output i gets values i and i+3. Outputs are
	// rendezvous channels, so they must be read in distribution order.
	for round := range 2 {
		for i, out := range outs {
			v, err := out.Receive()
			require.NoError(t, err)
			assert.Equal(t, round*3+i, v)
		}
	}
	wg.Wait()

	for _, out := range outs {
		require.Eventually(t, out.IsClosed, time.Second, time.Millisecond)
	}
}

func TestFanOut_Panics(t *testing.T) {
	in := newChan[int](t, 1)
	assert.PanicsWithValue(t, "chanx: FanOut requires n > 0", func() {
		FanOut(context.Background(), in, 0)
	})
}
