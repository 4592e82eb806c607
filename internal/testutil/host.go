// Package testutil provides an in-memory Host implementation so selection,
// action and UI tests can run without a browser extension attached.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/tab-merge-control/internal/bridge"
)

// FakeHost is a scriptable bridge.Host backed by an in-memory window list.
// Mutating calls edit the list the way a browser would, so tests can
// assert on the resulting window/tab layout.
type FakeHost struct {
	mu sync.Mutex

	windows       []bridge.Window
	nextWindowID  int
	controlWindow int

	// Errors returned by the matching call when set.
	ListErr   error
	CreateErr error
	MoveErr   error
	FocusErr  error
	CloseErr  error
	LocateErr error

	Calls []string

	notifications chan bridge.Notification
}

func NewFakeHost(windows []bridge.Window) *FakeHost {
	next := 100
	for _, w := range windows {
		if w.ID >= next {
			next = w.ID + 1
		}
	}
	return &FakeHost{
		windows:       cloneWindows(windows),
		nextWindowID:  next,
		notifications: make(chan bridge.Notification, 16),
	}
}

func cloneWindows(windows []bridge.Window) []bridge.Window {
	dup := make([]bridge.Window, len(windows))
	for i, w := range windows {
		dup[i] = w
		dup[i].Tabs = append([]bridge.Tab(nil), w.Tabs...)
	}
	return dup
}

// SetControlWindow marks the window hosting the control page.
func (h *FakeHost) SetControlWindow(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.controlWindow = id
}

// Windows returns a copy of the current window list.
func (h *FakeHost) Windows() []bridge.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneWindows(h.windows)
}

// TabIDs returns the tab ids of the given window in order.
func (h *FakeHost) TabIDs(windowID int) []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.windows {
		if w.ID == windowID {
			ids := make([]int, len(w.Tabs))
			for i, t := range w.Tabs {
				ids[i] = t.ID
			}
			return ids
		}
	}
	return nil
}

func (h *FakeHost) record(format string, args ...interface{}) {
	h.Calls = append(h.Calls, fmt.Sprintf(format, args...))
}

func (h *FakeHost) ListWindows(context.Context) ([]bridge.Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("list-windows")
	if h.ListErr != nil {
		return nil, h.ListErr
	}
	return cloneWindows(h.windows), nil
}

func (h *FakeHost) CreateWindow(_ context.Context, seedTabID int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("create-window seed=%d", seedTabID)
	if h.CreateErr != nil {
		return 0, h.CreateErr
	}
	tab, ok := h.detachTab(seedTabID)
	if !ok {
		return 0, fmt.Errorf("no such tab %d", seedTabID)
	}
	id := h.nextWindowID
	h.nextWindowID++
	tab.WindowID = id
	h.windows = append(h.windows, bridge.Window{ID: id, Tabs: []bridge.Tab{tab}})
	return id, nil
}

func (h *FakeHost) MoveTabs(_ context.Context, tabIDs []int, windowID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("move-tabs tabs=%v window=%d", tabIDs, windowID)
	if h.MoveErr != nil {
		return h.MoveErr
	}
	target := h.findWindow(windowID)
	if target == nil {
		return fmt.Errorf("no such window %d", windowID)
	}
	for _, id := range tabIDs {
		tab, ok := h.detachTab(id)
		if !ok {
			return fmt.Errorf("no such tab %d", id)
		}
		// detachTab may reslice; re-resolve the target.
		target = h.findWindow(windowID)
		tab.WindowID = windowID
		target.Tabs = append(target.Tabs, tab)
	}
	return nil
}

func (h *FakeHost) FocusWindow(_ context.Context, windowID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("focus-window window=%d", windowID)
	if h.FocusErr != nil {
		return h.FocusErr
	}
	found := false
	for i := range h.windows {
		h.windows[i].Focused = h.windows[i].ID == windowID
		if h.windows[i].ID == windowID {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("no such window %d", windowID)
	}
	return nil
}

func (h *FakeHost) CloseTab(_ context.Context, tabID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("close-tab tab=%d", tabID)
	if h.CloseErr != nil {
		return h.CloseErr
	}
	if _, ok := h.detachTab(tabID); !ok {
		return fmt.Errorf("no such tab %d", tabID)
	}
	return nil
}

func (h *FakeHost) LocateControlWindow(context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("locate-control-window")
	if h.LocateErr != nil {
		return 0, h.LocateErr
	}
	return h.controlWindow, nil
}

func (h *FakeHost) Notifications() <-chan bridge.Notification {
	return h.notifications
}

// Notify pushes a change notification, as the extension would.
func (h *FakeHost) Notify(n bridge.Notification) {
	h.notifications <- n
}

func (h *FakeHost) findWindow(id int) *bridge.Window {
	for i := range h.windows {
		if h.windows[i].ID == id {
			return &h.windows[i]
		}
	}
	return nil
}

// detachTab removes the tab from whichever window holds it. Windows left
// empty stay in the list, as browsers close them asynchronously.
func (h *FakeHost) detachTab(tabID int) (bridge.Tab, bool) {
	for i := range h.windows {
		for j, t := range h.windows[i].Tabs {
			if t.ID == tabID {
				h.windows[i].Tabs = append(h.windows[i].Tabs[:j:j], h.windows[i].Tabs[j+1:]...)
				return t, true
			}
		}
	}
	return bridge.Tab{}, false
}
