package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.board.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.mode == ModeSplitChoice {
		return m.handleSplitChoiceKey(key)
	}
	if m.board.Filtering {
		if handled, cmd := m.handleFilterKey(key); handled {
			return cmd
		}
		return nil
	}
	return m.handleBoardKey(key)
}

func (m *Model) handleSplitChoiceKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		m.closeSplitChoice("cancelled")
	case "up", "k", "down", "j", "tab":
		m.splitCursor = 1 - m.splitCursor
	case "enter":
		return m.confirmSplitChoice()
	}
	return nil
}

func (m *Model) handleBoardKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		if m.drag.active {
			m.cancelDrag()
			return nil
		}
		m.selection.Reset()
		m.errMsg = ""
		m.forceClearInfo()
		return nil
	case "/":
		m.board.Filtering = true
		m.filterCursorDirty = true
		return nil
	case "m":
		return m.advanceMerge()
	case "a":
		return m.mergeAll()
	case "s":
		return m.splitCurrent()
	case "b":
		m.openSplitChoice(m.windows.ActiveID())
		return nil
	case "up", "k":
		if m.board.MoveCursorRow(-1, m.columns) {
			m.syncViewport()
			events.UI.BoardCursor(m.board.Cursor)
		}
		return nil
	case "down", "j":
		if m.board.MoveCursorRow(1, m.columns) {
			m.syncViewport()
			events.UI.BoardCursor(m.board.Cursor)
		}
		return nil
	case "left", "h":
		if m.board.MoveCursorBy(-1) {
			m.syncViewport()
			events.UI.BoardCursor(m.board.Cursor)
		}
		return nil
	case "right", "l":
		if m.board.MoveCursorBy(1) {
			m.syncViewport()
			events.UI.BoardCursor(m.board.Cursor)
		}
		return nil
	case "home":
		if m.board.MoveCursorHome() {
			m.syncViewport()
		}
		return nil
	case "end":
		if m.board.MoveCursorEnd() {
			m.syncViewport()
		}
		return nil
	case "tab":
		m.moveStripCursor(1)
		return nil
	case "shift+tab":
		m.moveStripCursor(-1)
		return nil
	case "enter":
		entries := m.windows.Entries()
		if m.stripCursor >= 0 && m.stripCursor < len(entries) {
			m.setActiveWindow(entries[m.stripCursor].ID)
			events.Window.Activate(entries[m.stripCursor].ID)
		}
		return nil
	case " ", "space":
		if card, ok := m.board.CursorCard(); ok {
			m.selection.ToggleTab(card.TabID)
		}
		return nil
	case "x":
		if card, ok := m.board.CursorCard(); ok {
			return m.closeTab(card.TabID)
		}
		return nil
	}
	return nil
}

func (m *Model) moveStripCursor(delta int) {
	n := len(m.windows.Entries())
	if n == 0 {
		m.stripCursor = 0
		return
	}
	m.stripCursor = (m.stripCursor + delta + n) % n
}

func (m *Model) handleFilterKey(key tea.KeyMsg) (bool, tea.Cmd) {
	switch key.String() {
	case "esc":
		before := m.board.FilterCursorPos()
		m.board.SetFilter("", 0)
		m.board.Filtering = false
		m.noteFilterCursorChange(before)
		events.Filter.Cleared()
		m.syncViewport()
		return true, nil
	case "enter":
		m.board.Filtering = false
		return true, nil
	case "ctrl+u":
		if m.board.Filter == "" {
			return true, nil
		}
		before := m.board.FilterCursorPos()
		m.board.SetFilter("", 0)
		m.noteFilterCursorChange(before)
		events.Filter.Cleared()
		m.syncViewport()
		return true, nil
	case "ctrl+w":
		before := m.board.FilterCursorPos()
		if !m.board.DeleteFilterWordBackward() {
			return true, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Backspace(m.board.Filter)
		m.syncViewport()
		return true, nil
	case "ctrl+a":
		before := m.board.FilterCursorPos()
		if m.board.MoveFilterCursorStart() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.board.FilterCursor)
		}
		return true, nil
	case "ctrl+e":
		before := m.board.FilterCursorPos()
		if m.board.MoveFilterCursorEnd() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.board.FilterCursor)
		}
		return true, nil
	}
	switch key.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := m.board.FilterCursorPos()
		if m.board.DeleteFilterRuneBackward() {
			m.noteFilterCursorChange(before)
			events.Filter.Backspace(m.board.Filter)
			m.syncViewport()
		}
		return true, nil
	case tea.KeyLeft:
		before := m.board.FilterCursorPos()
		if m.board.MoveFilterCursorRuneBackward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.board.FilterCursor)
		}
		return true, nil
	case tea.KeyRight:
		before := m.board.FilterCursorPos()
		if m.board.MoveFilterCursorRuneForward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.board.FilterCursor)
		}
		return true, nil
	case tea.KeySpace:
		return true, m.appendToFilterCmd(" ")
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return true, nil
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return true, nil
			}
		}
		return true, m.appendToFilterCmd(string(key.Runes))
	}
	return true, nil
}

func (m *Model) appendToFilterCmd(text string) tea.Cmd {
	before := m.board.FilterCursorPos()
	if !m.board.InsertFilterText(text) {
		return nil
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(m.board.Filter)
	m.syncViewport()
	return nil
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.board.Filter
	if !m.board.Filtering {
		if text == "" {
			return render(styles.Footer, "press / to filter tabs")
		}
		return prompt + render(styles.Filter, text)
	}
	runes := []rune(text)
	pos := m.board.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderFilterCursor(caretRune)
	after := ""
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}
	return base.Reverse(true).Render(char)
}
