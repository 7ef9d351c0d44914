package boundchan_test

import (
	"fmt"
	"testing"

	"github.com/baxromumarov/boundchan"
)

// BenchmarkTrySendTryReceive measures the uncontended non-blocking path.
func BenchmarkTrySendTryReceive(b *testing.B) {
	ch, _ := boundchan.New[int](1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ch.TrySend(i)
		_, _ = ch.TryReceive()
	}
}

// BenchmarkNativeSelectDefault is the baseline for the non-blocking path.
func BenchmarkNativeSelectDefault(b *testing.B) {
	ch := make(chan int, 1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		select {
		case ch <- i:
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// BenchmarkSelectReady measures a select whose last case is ready.
func BenchmarkSelectReady(b *testing.B) {
	for _, n := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("cases=%d", n), func(b *testing.B) {
			chs := make([]*boundchan.Channel[int], n)
			cases := make([]boundchan.Case, n)
			for i := range chs {
				chs[i], _ = boundchan.New[int](1)
				cases[i] = boundchan.RecvCase(chs[i], nil)
			}
			last := chs[n-1]

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = last.TrySend(i)
				_, _ = boundchan.Select(cases...)
			}
		})
	}
}
