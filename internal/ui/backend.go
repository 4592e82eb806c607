package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/backend"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}
	m.backendLastErr = ""

	res := m.dispatcher.Handle(evt)
	if !res.WindowsUpdated {
		return
	}
	if res.ActiveReassigned {
		m.stripCursor = 0
	}
	m.clampStripCursor()
	// The modal's window can vanish mid-choice.
	if m.mode == ModeSplitChoice {
		if _, ok := m.windows.Window(m.splitWindowID); !ok {
			m.closeSplitChoice("window gone")
		}
	}
	m.syncBoard()
}

func (m *Model) clampStripCursor() {
	n := len(m.windows.Entries())
	if n == 0 {
		m.stripCursor = 0
		return
	}
	if m.stripCursor < 0 {
		m.stripCursor = 0
	}
	if m.stripCursor >= n {
		m.stripCursor = n - 1
	}
}
