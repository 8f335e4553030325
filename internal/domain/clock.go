package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can pin the window anchor.
// Production code uses the real clock; tests inject a fake via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for the default window anchor.
// Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
