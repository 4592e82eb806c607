package backend

import (
	"context"
	"time"
)

// fetchGate spaces window-list fetches out so a burst of change
// notifications collapses into one refetch after the interval. Used from
// the watcher's run goroutine only, so no locking is needed.
type fetchGate struct {
	interval time.Duration
	last     time.Time
}

func newFetchGate(interval time.Duration) *fetchGate {
	return &fetchGate{interval: interval}
}

// wait blocks until the minimum spacing since the previous pass has
// elapsed, or until ctx is cancelled.
func (g *fetchGate) wait(ctx context.Context) error {
	if g.interval > 0 {
		due := g.last.Add(g.interval)
		if d := time.Until(due); d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	g.last = time.Now()
	return nil
}
