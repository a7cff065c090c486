package game

import "time"

const DefaultTickRate = 30 // ticks per second

// TickInterval returns the duration of one tick at rate ticks per second.
func TickInterval(rate int) time.Duration {
	if rate < 1 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}
