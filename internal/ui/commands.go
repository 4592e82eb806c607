package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/logging/events"
	"github.com/atomicstack/tab-merge-control/internal/merge"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(merge.ActionResult)
	if !ok {
		return nil
	}
	m.busy = false
	pending := m.pendingID
	m.pendingID = ""
	m.pendingLabel = ""

	if result.Err != nil {
		if notice, isNotice := result.Err.(merge.Notice); isNotice {
			m.setInfo(string(notice))
		} else {
			m.errMsg = result.Err.Error()
			m.forceClearInfo()
		}
		events.Action.Error(result.Err)
	} else {
		m.errMsg = ""
		if result.Info != "" && m.verbose {
			m.setInfo(result.Info)
		} else {
			m.forceClearInfo()
		}
		events.Action.Success(result.Info)
	}

	switch pending {
	case merge.ActionMergeExecute:
		// A failed merge is not resumable: the staged picks are gone
		// either way.
		m.selection.FinishMerge()
	case merge.ActionSplit:
		if result.Err == nil {
			m.selection.ClearCurrent()
		}
	}

	if m.backend != nil {
		m.backend.Refresh()
	}
	return nil
}

// advanceMerge drives the three-stage merge protocol: first press stages
// the source, second the target, third executes.
func (m *Model) advanceMerge() tea.Cmd {
	if m.busy {
		m.setInfo("busy: " + m.pendingLabel)
		return nil
	}
	before := m.selection.Stage()
	res, err := m.selection.Advance()
	if err != nil {
		if notice, ok := err.(merge.Notice); ok {
			m.setInfo(string(notice))
			if before == merge.StageSourceStaged {
				events.Merge.StageRevert(string(notice))
			}
		} else {
			m.errMsg = err.Error()
		}
		return nil
	}
	if !res.Execute {
		events.Merge.Stage(before.String(), m.selection.Stage().String())
		return nil
	}
	combined := res.Combined
	return m.startAction(merge.ActionMergeExecute, "merge", func(ctx merge.Context) tea.Cmd {
		return merge.MergeCommand(ctx, combined)
	})
}

func (m *Model) mergeAll() tea.Cmd {
	return m.startAction(merge.ActionMergeAll, "merge all", merge.MergeAllCommand)
}

// splitCurrent moves the current selection into a new window. The
// selection is cleared only once the host reports success.
func (m *Model) splitCurrent() tea.Cmd {
	current := m.selection.Current()
	if len(current) == 0 {
		m.setInfo(string(merge.ErrNoTabs))
		return nil
	}
	return m.startAction(merge.ActionSplit, "split", func(ctx merge.Context) tea.Cmd {
		return merge.SplitCommand(ctx, current)
	})
}

func (m *Model) closeTab(tabID int) tea.Cmd {
	return m.startAction(merge.ActionCloseTab, "close tab", func(ctx merge.Context) tea.Cmd {
		return merge.CloseTabCommand(ctx, tabID)
	})
}

// openSplitChoice shows the per-window split modal for the given window.
func (m *Model) openSplitChoice(windowID int) {
	win, ok := m.windows.Window(windowID)
	if !ok {
		return
	}
	if len(win.Tabs) < 2 {
		m.setInfo(string(merge.ErrNotEnoughTabs))
		return
	}
	m.mode = ModeSplitChoice
	m.splitWindowID = windowID
	m.splitCursor = 0
	events.UI.ModalOpen(windowID)
}

func (m *Model) closeSplitChoice(reason string) {
	m.mode = ModeBoard
	m.splitWindowID = 0
	m.splitCursor = 0
	events.UI.ModalClose(reason)
}

func (m *Model) confirmSplitChoice() tea.Cmd {
	win, ok := m.windows.Window(m.splitWindowID)
	if !ok {
		m.closeSplitChoice("window gone")
		return nil
	}
	mode := merge.SplitMoveOthers
	if m.splitCursor == 1 {
		mode = merge.SplitMoveActive
	}
	m.closeSplitChoice("confirmed")
	return m.startAction(merge.ActionSplitWindow, "split window", func(ctx merge.Context) tea.Cmd {
		return merge.SplitWindowCommand(ctx, win, mode)
	})
}
