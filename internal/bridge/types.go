package bridge

import "context"

// Tab mirrors a single browser tab as reported by the extension.
type Tab struct {
	ID       int    `json:"id"`
	WindowID int    `json:"windowId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"favIconUrl,omitempty"`
	Active   bool   `json:"active"`
}

// Window mirrors a browser window with its ordered tabs.
type Window struct {
	ID      int   `json:"id"`
	Focused bool  `json:"focused"`
	Tabs    []Tab `json:"tabs"`
}

// Notification names a host-side change. The payload is never interpreted;
// every notification triggers the same full refetch.
type Notification string

const (
	NotifyTabCreated    Notification = "tab-created"
	NotifyTabRemoved    Notification = "tab-removed"
	NotifyTabMoved      Notification = "tab-moved"
	NotifyWindowCreated Notification = "window-created"
	NotifyWindowRemoved Notification = "window-removed"
)

// Host is the window/tab command surface the rest of the program consumes.
// The production implementation is *Server; tests substitute a fake.
type Host interface {
	// ListWindows returns every window with its tabs in host order.
	ListWindows(ctx context.Context) ([]Window, error)
	// CreateWindow creates a new window seeded by moving the given tab
	// out of its current window, and returns the new window's id.
	CreateWindow(ctx context.Context, seedTabID int) (int, error)
	// MoveTabs appends the given tabs, in order, to the end of the window.
	MoveTabs(ctx context.Context, tabIDs []int, windowID int) error
	FocusWindow(ctx context.Context, windowID int) error
	CloseTab(ctx context.Context, tabID int) error
	// LocateControlWindow reports the window hosting the extension's
	// control page. Implementations fall back to the last known value
	// when the lookup fails.
	LocateControlWindow(ctx context.Context) (int, error)
}
