package match

import (
	"sync"
	"time"
)

// ticker is a cancellable repeating timer owned by exactly one match slot
// (the start countdown or a single player's respawn countdown). A new ticker
// is never armed for a slot before the previous one is cancelled, and tick
// callbacks verify they are still the slot's current ticker before mutating
// anything, so a cancellation racing an in-flight tick cannot double-fire.
type ticker struct {
	stop chan struct{}
	once sync.Once
}

// startTicker arms a ticker firing fn every interval. fn receives the ticker
// itself for identity checks and returns false to stop. The first tick fires
// after one full interval.
func startTicker(interval time.Duration, fn func(self *ticker) bool) *ticker {
	t := &ticker{stop: make(chan struct{})}
	go t.loop(interval, fn)
	return t
}

func (t *ticker) loop(interval time.Duration, fn func(self *ticker) bool) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tick.C:
			if !fn(t) {
				t.Cancel()
				return
			}
		}
	}
}

// Cancel stops the ticker. Safe to call more than once and concurrently with
// a firing tick.
func (t *ticker) Cancel() {
	t.once.Do(func() { close(t.stop) })
}
