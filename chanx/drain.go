package chanx

import "github.com/baxromumarov/boundchan"

// Drain discards every value currently buffered in ch without blocking
// and returns how many were discarded. Use it to unblock producers
// parked on a full channel during shutdown, before closing it.
//
// Drain stops at the first error, so on a closed channel it returns 0.
func Drain[T any](ch *boundchan.Channel[T]) int {
	n := 0
	for {
		if _, err := ch.TryReceive(); err != nil {
			return n
		}
		n++
	}
}
