package ui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"

	"github.com/atomicstack/tab-merge-control/internal/backend"
	"github.com/atomicstack/tab-merge-control/internal/bridge"
	"github.com/atomicstack/tab-merge-control/internal/merge"
	"github.com/atomicstack/tab-merge-control/internal/testutil"
)

func hostWindows() []bridge.Window {
	return []bridge.Window{
		{ID: 1, Focused: true, Tabs: []bridge.Tab{
			{ID: 1, WindowID: 1, Title: "mail inbox", URL: "https://mail.example.com", Active: true},
			{ID: 2, WindowID: 1, Title: "issue tracker", URL: "https://issues.example.com"},
			{ID: 3, WindowID: 1, Title: "wiki", URL: "https://wiki.example.com"},
		}},
		{ID: 2, Tabs: []bridge.Tab{
			{ID: 4, WindowID: 2, Title: "dashboard", URL: "https://dash.example.com", Active: true},
			{ID: 5, WindowID: 2, Title: "builds", URL: "https://ci.example.com"},
		}},
	}
}

// newTestModel builds a model over a fake host, feeds it one backend
// snapshot and renders once so the layout rectangles exist.
func newTestModel(t *testing.T, host *testutil.FakeHost) *Model {
	t.Helper()
	m := NewModel(host, 80, 30, false, false, nil)
	m.filterCursor.SetMode(cursor.CursorStatic)
	m.applyBackendEvent(backend.Event{Windows: host.Windows()})
	m.View()
	return m
}

func refreshFromHost(m *Model, host *testutil.FakeHost) {
	m.applyBackendEvent(backend.Event{Windows: host.Windows()})
	m.View()
}

func TestBusyGuardRefusesSecondAction(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.busy = true
	m.pendingLabel = "merge"
	if cmd := m.advanceMerge(); cmd != nil {
		t.Fatalf("expected no command while busy")
	}
	if m.currentInfo() != "busy: merge" {
		t.Fatalf("info = %q, want busy notice", m.currentInfo())
	}
}

func TestMergeFailureClearsStagedSelection(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.selection.ToggleTab(1)
	if _, err := m.selection.Advance(); err != nil {
		t.Fatalf("stage source: %v", err)
	}
	m.selection.ToggleTab(4)
	if _, err := m.selection.Advance(); err != nil {
		t.Fatalf("stage target: %v", err)
	}
	m.busy = true
	m.pendingID = merge.ActionMergeExecute
	m.pendingLabel = "merge"
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionMergeExecute, Err: errors.New("host went away")})
	if m.selection.Stage() != merge.StageIdle {
		t.Fatalf("stage = %v, want idle after failed merge", m.selection.Stage())
	}
	if len(m.selection.Source()) != 0 || len(m.selection.Target()) != 0 {
		t.Fatalf("staged sets should be empty after failed merge")
	}
	if m.errMsg != "host went away" {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
	if m.busy {
		t.Fatalf("busy should be cleared")
	}
}

func TestSplitFailureKeepsCurrentSelection(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.selection.ToggleTab(2)
	m.selection.ToggleTab(3)
	m.busy = true
	m.pendingID = merge.ActionSplit
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionSplit, Err: errors.New("boom")})
	if got := m.selection.Current(); len(got) != 2 {
		t.Fatalf("current = %v, want selection preserved", got)
	}
}

func TestSplitSuccessClearsCurrentSelection(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.verbose = true
	m.selection.ToggleTab(2)
	m.busy = true
	m.pendingID = merge.ActionSplit
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionSplit, Info: "split 1 tab"})
	if got := m.selection.Current(); len(got) != 0 {
		t.Fatalf("current = %v, want empty after successful split", got)
	}
	if m.currentInfo() != "split 1 tab" {
		t.Fatalf("info = %q", m.currentInfo())
	}
}

func TestSuccessInfoOnlyShownWhenVerbose(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.busy = true
	m.pendingID = merge.ActionCloseTab
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionCloseTab, Info: "closed tab 2"})
	if m.currentInfo() != "" {
		t.Fatalf("info = %q, want success messages muted by default", m.currentInfo())
	}

	m.verbose = true
	m.busy = true
	m.pendingID = merge.ActionCloseTab
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionCloseTab, Info: "closed tab 3"})
	if m.currentInfo() != "closed tab 3" {
		t.Fatalf("info = %q, want the success message under -verbose", m.currentInfo())
	}
}

func TestNoticeResultShowsAsInfoNotError(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.busy = true
	m.pendingID = merge.ActionMergeAll
	m.handleActionResultMsg(merge.ActionResult{ID: merge.ActionMergeAll, Err: merge.Notice("nothing to merge")})
	if m.errMsg != "" {
		t.Fatalf("errMsg = %q, want empty for a notice", m.errMsg)
	}
	if m.currentInfo() != "nothing to merge" {
		t.Fatalf("info = %q", m.currentInfo())
	}
}

func TestSetActiveWindowClearsFilterAndRebuildsBoard(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.board.SetFilter("mail", 4)
	if len(m.board.Cards) != 1 {
		t.Fatalf("filtered cards = %d, want 1", len(m.board.Cards))
	}
	m.setActiveWindow(2)
	if m.board.Filter != "" {
		t.Fatalf("filter = %q, want cleared on window switch", m.board.Filter)
	}
	if len(m.board.Cards) != 2 {
		t.Fatalf("cards = %d, want the new window's tabs", len(m.board.Cards))
	}
	if m.board.Cards[0].TabID != 4 {
		t.Fatalf("first card = %d, want 4", m.board.Cards[0].TabID)
	}
}

func TestBackendErrorKeepsLastGoodBoard(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.applyBackendEvent(backend.Event{Err: errors.New("not connected")})
	if m.backendLastErr != "not connected" {
		t.Fatalf("backendLastErr = %q", m.backendLastErr)
	}
	if len(m.board.Cards) != 3 {
		t.Fatalf("cards = %d, want last good snapshot kept", len(m.board.Cards))
	}
	m.applyBackendEvent(backend.Event{Windows: host.Windows()})
	if m.backendLastErr != "" {
		t.Fatalf("backendLastErr should clear on a good event")
	}
}

func TestModalClosesWhenItsWindowVanishes(t *testing.T) {
	host := testutil.NewFakeHost(hostWindows())
	m := newTestModel(t, host)
	m.setActiveWindow(2)
	m.openSplitChoice(2)
	if m.mode != ModeSplitChoice {
		t.Fatalf("mode = %v, want split choice", m.mode)
	}
	m.applyBackendEvent(backend.Event{Windows: hostWindows()[:1]})
	if m.mode != ModeBoard {
		t.Fatalf("modal should close when its window disappears")
	}
}
