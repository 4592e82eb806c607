package backend

import (
	"sort"

	"github.com/atomicstack/tab-merge-control/internal/bridge"
)

// Snapshot is a normalised copy of the host's window list, ordered by
// window id so two fetches of the same state compare equal.
type Snapshot struct {
	windows []bridge.Window
}

func takeSnapshot(windows []bridge.Window) Snapshot {
	copied := make([]bridge.Window, len(windows))
	for i, w := range windows {
		copied[i] = w
		copied[i].Tabs = append([]bridge.Tab(nil), w.Tabs...)
	}
	sort.Slice(copied, func(i, j int) bool { return copied[i].ID < copied[j].ID })
	return Snapshot{windows: copied}
}

// Windows returns the snapshot's windows. Callers must not mutate them.
func (s Snapshot) Windows() []bridge.Window {
	return s.windows
}

// TabCount returns the total number of tabs across all windows.
func (s Snapshot) TabCount() int {
	total := 0
	for _, w := range s.windows {
		total += len(w.Tabs)
	}
	return total
}

// Equal reports whether two snapshots describe identical host state,
// including tab titles, URLs and active flags. Redraws are suppressed
// when successive snapshots are equal.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.windows) != len(other.windows) {
		return false
	}
	for i, w := range s.windows {
		o := other.windows[i]
		if w.ID != o.ID || w.Focused != o.Focused || len(w.Tabs) != len(o.Tabs) {
			return false
		}
		for j, t := range w.Tabs {
			if t != o.Tabs[j] {
				return false
			}
		}
	}
	return true
}
