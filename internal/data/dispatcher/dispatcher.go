package dispatcher

import (
	"github.com/atomicstack/tab-merge-control/internal/backend"
	"github.com/atomicstack/tab-merge-control/internal/logging/events"
	"github.com/atomicstack/tab-merge-control/internal/merge"
	"github.com/atomicstack/tab-merge-control/internal/state"
)

type Result struct {
	WindowsUpdated   bool
	ActiveReassigned bool
}

// Dispatcher applies backend snapshots to the window store and keeps the
// dependent state consistent: the active window always refers to a live
// window, and the working selection never holds a dead tab.
type Dispatcher struct {
	windows   state.WindowStore
	selection *merge.Selection
}

func New(w state.WindowStore, sel *merge.Selection) *Dispatcher {
	return &Dispatcher{windows: w, selection: sel}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}

	entries := merge.WindowEntriesFromBridge(evt.Windows)
	d.windows.SetEntries(entries)
	res.WindowsUpdated = true

	if _, ok := d.windows.Window(d.windows.ActiveID()); !ok {
		if len(entries) > 0 {
			d.windows.SetActive(entries[0].ID)
			events.Window.Reassign(entries[0].ID)
		} else {
			d.windows.SetActive(0)
		}
		res.ActiveReassigned = true
	}

	d.selection.PruneCurrent(d.windows.TabIDs())
	return res
}
