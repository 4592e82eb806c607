package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tab-merge-control/internal/bridge"
	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

// Event conveys an updated window snapshot or an error from a refresh.
type Event struct {
	Windows []bridge.Window
	Err     error
}

// Watcher refreshes the window list whenever the bridge reports a tab or
// window change, and publishes a snapshot event only when the fetched
// state differs from the previous one. There is no polling: a quiet host
// produces no fetches and no events.
type Watcher struct {
	host   bridge.Host
	notify <-chan bridge.Notification

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh chan struct{}
	wg      sync.WaitGroup

	gate    *fetchGate
	last    Snapshot
	fetched bool
}

// NewWatcher creates a watcher driven by the given notification stream.
// An initial refresh runs immediately so the first snapshot arrives
// without waiting for host activity.
func NewWatcher(host bridge.Host, notify <-chan bridge.Notification) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		host:     host,
		notify:   notify,
		ctx:      ctx,
		cancel:   cancel,
		events:  make(chan Event, 16),
		refresh: make(chan struct{}, 1),
		gate:    newFetchGate(100 * time.Millisecond),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh requests an out-of-band refetch, used after the UI issues a
// host mutation so its effect shows up even if the notification is lost.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. The runner exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the runner has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	if !w.fetch() {
		return
	}

	notify := w.notify
	for {
		select {
		case <-w.ctx.Done():
			return
		case n, ok := <-notify:
			if !ok {
				notify = nil
				continue
			}
			events.Sync.Notify(string(n))
			w.drainNotifications(notify)
			if !w.fetch() {
				return
			}
		case <-w.refresh:
			if !w.fetch() {
				return
			}
		}
	}
}

// drainNotifications collapses a burst of queued notifications into the
// single fetch that follows.
func (w *Watcher) drainNotifications(notify <-chan bridge.Notification) {
	for {
		select {
		case n, ok := <-notify:
			if !ok {
				return
			}
			events.Sync.Notify(string(n))
		default:
			return
		}
	}
}

// fetch pulls the window list, diffs it against the previous snapshot and
// emits an event when something changed. Returns false once the watcher
// has been stopped.
func (w *Watcher) fetch() bool {
	if err := w.gate.wait(w.ctx); err != nil {
		return false
	}

	windows, err := w.host.ListWindows(w.ctx)
	if err != nil {
		if w.ctx.Err() != nil {
			return false
		}
		events.Sync.Error(err)
		return w.emit(Event{Err: err})
	}

	snap := takeSnapshot(windows)
	changed := !w.fetched || !snap.Equal(w.last)
	events.Sync.Refresh(len(snap.Windows()), snap.TabCount(), changed)
	if !changed {
		return true
	}
	w.last = snap
	w.fetched = true
	return w.emit(Event{Windows: snap.Windows()})
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
