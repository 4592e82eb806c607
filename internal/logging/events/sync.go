package events

import "github.com/atomicstack/tab-merge-control/internal/logging"

type SyncTracer struct{}

var Sync = SyncTracer{}

func (SyncTracer) Notify(event string) {
	logging.Trace("sync.notify", map[string]interface{}{"event": event})
}

func (SyncTracer) Refresh(windows, tabs int, changed bool) {
	logging.Trace("sync.refresh", map[string]interface{}{
		"windows": windows,
		"tabs":    tabs,
		"changed": changed,
	})
}

func (SyncTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("sync.error", map[string]interface{}{"error": err.Error()})
}
