package bridge

import "encoding/json"

// Wire methods understood by the companion extension.
const (
	methodListWindows   = "list-windows"
	methodCreateWindow  = "create-window"
	methodMoveTabs      = "move-tabs"
	methodFocusWindow   = "focus-window"
	methodCloseTab      = "close-tab"
	methodLocateControl = "locate-control-window"
)

// frame is the single envelope for every message in either direction.
// Requests carry id+method+params, responses id+ok(+error|result), and
// unsolicited change notifications just an event name.
type frame struct {
	ID     int64           `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params interface{}     `json:"params,omitempty"`
	OK     *bool           `json:"ok,omitempty"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Event  string          `json:"event,omitempty"`
}

type createWindowParams struct {
	SeedTabID int `json:"seedTabId"`
}

type createWindowResult struct {
	WindowID int `json:"windowId"`
}

type moveTabsParams struct {
	TabIDs   []int  `json:"tabIds"`
	WindowID int    `json:"windowId"`
	Position string `json:"position"`
}

type focusWindowParams struct {
	WindowID int `json:"windowId"`
}

type closeTabParams struct {
	TabID int `json:"tabId"`
}

type listWindowsResult struct {
	Windows []Window `json:"windows"`
}

type locateControlResult struct {
	WindowID int `json:"windowId"`
}
