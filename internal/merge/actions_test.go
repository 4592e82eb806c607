package merge

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tab-merge-control/internal/bridge"
	"github.com/atomicstack/tab-merge-control/internal/testutil"
)

func twoWindows() []bridge.Window {
	return []bridge.Window{
		{ID: 1, Tabs: []bridge.Tab{
			{ID: 1, WindowID: 1, Title: "one"},
			{ID: 2, WindowID: 1, Title: "two"},
			{ID: 3, WindowID: 1, Title: "three"},
		}},
		{ID: 2, Tabs: []bridge.Tab{
			{ID: 4, WindowID: 2, Title: "four"},
			{ID: 5, WindowID: 2, Title: "five"},
		}},
	}
}

func contextFor(host *testutil.FakeHost, activeID int) Context {
	return Context{
		Host:           host,
		Windows:        WindowEntriesFromBridge(host.Windows()),
		ActiveWindowID: activeID,
	}
}

func TestMergeCommandMovesCombinedIntoNewWindow(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	ctx := contextFor(host, 1)

	msg := MergeCommand(ctx, []int{2, 4})()
	result, ok := msg.(ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult, got %T", msg)
	}
	if result.Err != nil {
		t.Fatalf("merge failed: %v", result.Err)
	}
	if result.ID != ActionMergeExecute {
		t.Fatalf("unexpected action id %q", result.ID)
	}

	windows := host.Windows()
	last := windows[len(windows)-1]
	if got := host.TabIDs(last.ID); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("expected new window [2 4], got %v", got)
	}
	if got := host.TabIDs(1); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("expected window 1 left with [1 3], got %v", got)
	}
	if got := host.TabIDs(2); !reflect.DeepEqual(got, []int{5}) {
		t.Fatalf("expected window 2 left with [5], got %v", got)
	}
}

func TestMergeCommandEmptySelection(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	msg := MergeCommand(contextFor(host, 1), nil)()
	result := msg.(ActionResult)
	if result.Err != ErrNoTabs {
		t.Fatalf("expected ErrNoTabs, got %v", result.Err)
	}
	if len(host.Calls) != 0 {
		t.Fatalf("no host calls expected, got %v", host.Calls)
	}
}

func TestMergeCommandCreateFailure(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	host.CreateErr = errors.New("boom")
	msg := MergeCommand(contextFor(host, 1), []int{2, 4})()
	result := msg.(ActionResult)
	if result.Err == nil || !strings.Contains(result.Err.Error(), "create window") {
		t.Fatalf("expected create window error, got %v", result.Err)
	}
}

func TestMergeAllFoldsIntoControlWindow(t *testing.T) {
	host := testutil.NewFakeHost([]bridge.Window{
		{ID: 1, Tabs: []bridge.Tab{{ID: 1, WindowID: 1}}},
		{ID: 2, Tabs: []bridge.Tab{{ID: 2, WindowID: 2}, {ID: 3, WindowID: 2}}},
		{ID: 3},
	})
	host.SetControlWindow(1)

	msg := MergeAllCommand(contextFor(host, 2))()
	result := msg.(ActionResult)
	if result.Err != nil {
		t.Fatalf("merge all failed: %v", result.Err)
	}
	if got := host.TabIDs(1); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("expected window 1 to hold [1 2 3], got %v", got)
	}
	moves := 0
	for _, call := range host.Calls {
		if strings.HasPrefix(call, "move-tabs") {
			moves++
		}
	}
	// The empty window 3 must be skipped, so only window 2 moves.
	if moves != 1 {
		t.Fatalf("expected 1 move, calls: %v", host.Calls)
	}
}

func TestMergeAllFallsBackToActiveWindow(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	host.LocateErr = errors.New("no control page")

	msg := MergeAllCommand(contextFor(host, 2))()
	result := msg.(ActionResult)
	if result.Err != nil {
		t.Fatalf("merge all failed: %v", result.Err)
	}
	if got := host.TabIDs(2); !reflect.DeepEqual(got, []int{4, 5, 1, 2, 3}) {
		t.Fatalf("expected active window to collect tabs, got %v", got)
	}
}

func TestMergeAllAbortsOnFirstFailure(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	host.SetControlWindow(1)
	host.MoveErr = errors.New("gone")

	msg := MergeAllCommand(contextFor(host, 1))()
	result := msg.(ActionResult)
	if result.Err == nil {
		t.Fatalf("expected failure")
	}
	moves := 0
	for _, call := range host.Calls {
		if strings.HasPrefix(call, "move-tabs") {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("expected abort after first move failure, calls: %v", host.Calls)
	}
}

func TestSplitCommandMovesSelection(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	msg := SplitCommand(contextFor(host, 1), []int{2, 3})()
	result := msg.(ActionResult)
	if result.Err != nil {
		t.Fatalf("split failed: %v", result.Err)
	}
	windows := host.Windows()
	last := windows[len(windows)-1]
	if got := host.TabIDs(last.ID); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("expected new window [2 3], got %v", got)
	}
}

func TestSplitCommandEmptySelection(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	msg := SplitCommand(contextFor(host, 1), nil)()
	if result := msg.(ActionResult); result.Err != ErrNoTabs {
		t.Fatalf("expected ErrNoTabs, got %v", result.Err)
	}
}

func TestSplitWindowMoveOthers(t *testing.T) {
	host := testutil.NewFakeHost([]bridge.Window{
		{ID: 1, Tabs: []bridge.Tab{
			{ID: 1, WindowID: 1},
			{ID: 2, WindowID: 1, Active: true},
			{ID: 3, WindowID: 1},
		}},
	})
	ctx := contextFor(host, 1)
	win, _ := ctx.Window(1)

	msg := SplitWindowCommand(ctx, win, SplitMoveOthers)()
	result := msg.(ActionResult)
	if result.Err != nil {
		t.Fatalf("split window failed: %v", result.Err)
	}
	if got := host.TabIDs(1); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("active tab must stay, got %v", got)
	}
	windows := host.Windows()
	last := windows[len(windows)-1]
	if got := host.TabIDs(last.ID); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("expected movers [1 3], got %v", got)
	}
	wantFocus := fmt.Sprintf("focus-window window=%d", last.ID)
	focused := false
	for _, call := range host.Calls {
		if call == wantFocus {
			focused = true
		}
	}
	if !focused {
		t.Fatalf("new window must be focused, host calls: %v", host.Calls)
	}
}

func TestSplitWindowMoveActive(t *testing.T) {
	host := testutil.NewFakeHost([]bridge.Window{
		{ID: 1, Tabs: []bridge.Tab{
			{ID: 1, WindowID: 1},
			{ID: 2, WindowID: 1, Active: true},
		}},
	})
	ctx := contextFor(host, 1)
	win, _ := ctx.Window(1)

	msg := SplitWindowCommand(ctx, win, SplitMoveActive)()
	if result := msg.(ActionResult); result.Err != nil {
		t.Fatalf("split window failed: %v", result.Err)
	}
	if got := host.TabIDs(1); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("expected only the inactive tab left, got %v", got)
	}
	windows := host.Windows()
	last := windows[len(windows)-1]
	if got := host.TabIDs(last.ID); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("expected active tab alone, got %v", got)
	}
	for _, call := range host.Calls {
		if strings.HasPrefix(call, "focus-window") {
			t.Fatalf("move-active must not change focus, host calls: %v", host.Calls)
		}
	}
}

func TestSplitWindowNeedsTwoTabs(t *testing.T) {
	host := testutil.NewFakeHost([]bridge.Window{
		{ID: 1, Tabs: []bridge.Tab{{ID: 1, WindowID: 1}}},
	})
	ctx := contextFor(host, 1)
	win, _ := ctx.Window(1)
	msg := SplitWindowCommand(ctx, win, SplitMoveOthers)()
	if result := msg.(ActionResult); result.Err != ErrNotEnoughTabs {
		t.Fatalf("expected ErrNotEnoughTabs, got %v", result.Err)
	}
}

func TestCloseTabCommand(t *testing.T) {
	host := testutil.NewFakeHost(twoWindows())
	msg := CloseTabCommand(contextFor(host, 1), 2)()
	if result := msg.(ActionResult); result.Err != nil {
		t.Fatalf("close failed: %v", result.Err)
	}
	if got := host.TabIDs(1); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("expected tab 2 closed, got %v", got)
	}
}

func TestWindowEntryActiveTabFallback(t *testing.T) {
	win := WindowEntry{ID: 1, Tabs: []TabEntry{{ID: 1}, {ID: 2}}}
	tab, ok := win.ActiveTab()
	if !ok || tab.ID != 1 {
		t.Fatalf("expected first tab fallback, got %v %v", tab, ok)
	}
	if _, ok := (WindowEntry{}).ActiveTab(); ok {
		t.Fatalf("empty window must report no active tab")
	}
}
