package state

import "github.com/atomicstack/tab-merge-control/internal/merge"

type WindowStore interface {
	Entries() []merge.WindowEntry
	SetEntries([]merge.WindowEntry)
	Window(id int) (merge.WindowEntry, bool)
	ActiveID() int
	SetActive(id int)
	TabIDs() map[int]bool
}

type windowStore struct {
	entries  []merge.WindowEntry
	activeID int
}

func NewWindowStore() WindowStore {
	return &windowStore{}
}

func (w *windowStore) Entries() []merge.WindowEntry {
	return cloneWindowEntries(w.entries)
}

func (w *windowStore) SetEntries(entries []merge.WindowEntry) {
	w.entries = cloneWindowEntries(entries)
}

func (w *windowStore) Window(id int) (merge.WindowEntry, bool) {
	for _, entry := range w.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return merge.WindowEntry{}, false
}

func (w *windowStore) ActiveID() int {
	return w.activeID
}

func (w *windowStore) SetActive(id int) {
	w.activeID = id
}

// TabIDs returns the set of live tab ids across all windows.
func (w *windowStore) TabIDs() map[int]bool {
	ids := make(map[int]bool)
	for _, entry := range w.entries {
		for _, tab := range entry.Tabs {
			ids[tab.ID] = true
		}
	}
	return ids
}

func cloneWindowEntries(entries []merge.WindowEntry) []merge.WindowEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]merge.WindowEntry, len(entries))
	for i, entry := range entries {
		dup[i] = entry
		dup[i].Tabs = append([]merge.TabEntry(nil), entry.Tabs...)
	}
	return dup
}
