package merge

import (
	"fmt"

	"github.com/atomicstack/tab-merge-control/internal/bridge"
)

// TabEntry mirrors one browser tab for selection and rendering.
type TabEntry struct {
	ID       int
	WindowID int
	Title    string
	URL      string
	Icon     string
	Active   bool
}

// WindowEntry mirrors one browser window with its ordered tabs.
type WindowEntry struct {
	ID      int
	Focused bool
	Tabs    []TabEntry
}

// TabIDs returns the window's tab ids in display order.
func (w WindowEntry) TabIDs() []int {
	ids := make([]int, len(w.Tabs))
	for i, t := range w.Tabs {
		ids[i] = t.ID
	}
	return ids
}

// ActiveTab returns the window's active tab, falling back to the first tab
// when none is marked active. ok is false for an empty window.
func (w WindowEntry) ActiveTab() (TabEntry, bool) {
	for _, t := range w.Tabs {
		if t.Active {
			return t, true
		}
	}
	if len(w.Tabs) > 0 {
		return w.Tabs[0], true
	}
	return TabEntry{}, false
}

// Label renders the window strip caption.
func (w WindowEntry) Label() string {
	suffix := "tabs"
	if len(w.Tabs) == 1 {
		suffix = "tab"
	}
	return fmt.Sprintf("window %d: %d %s", w.ID, len(w.Tabs), suffix)
}

// WindowEntriesFromBridge converts the bridge snapshot into entries.
func WindowEntriesFromBridge(windows []bridge.Window) []WindowEntry {
	entries := make([]WindowEntry, 0, len(windows))
	for _, w := range windows {
		entry := WindowEntry{ID: w.ID, Focused: w.Focused}
		for _, t := range w.Tabs {
			entry.Tabs = append(entry.Tabs, TabEntry{
				ID:       t.ID,
				WindowID: t.WindowID,
				Title:    t.Title,
				URL:      t.URL,
				Icon:     t.Icon,
				Active:   t.Active,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// Context carries runtime data needed by action commands.
type Context struct {
	Host           bridge.Host
	Windows        []WindowEntry
	ActiveWindowID int
}

// Window returns the entry for the given window id.
func (c Context) Window(id int) (WindowEntry, bool) {
	for _, w := range c.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowEntry{}, false
}

// ActionResult communicates the outcome of executing an action command.
type ActionResult struct {
	ID   string
	Info string
	Err  error
}

// Notice is a user-input error: reported in the status line, aborts the
// operation, and leaves all other state unchanged.
type Notice string

func (n Notice) Error() string { return string(n) }

var (
	ErrNoTabs        = Notice("no tabs selected")
	ErrNoTargetTabs  = Notice("no target tabs selected")
	ErrNotEnoughTabs = Notice("not enough tabs")
)
