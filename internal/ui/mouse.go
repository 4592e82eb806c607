package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

// Rect is an axis-aligned cell rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// rectBetween returns the inclusive AABB spanned by two cells.
func rectBetween(x1, y1, x2, y2 int) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1 + 1, H: y2 - y1 + 1}
}

// cardRect ties a rendered card (and its ✕ control) to screen cells.
type cardRect struct {
	tabID int
	index int
	rect  Rect
	close Rect
}

type stripRect struct {
	windowID int
	rect     Rect
}

type buttonRect struct {
	id   string
	rect Rect
}

// layout records the rectangles of the last render for hit-testing.
type layout struct {
	strip      []stripRect
	cards      []cardRect
	buttons    []buttonRect
	modalItems []Rect
}

const doubleClickWindow = 400 * time.Millisecond

// dragState implements the idle → dragging → idle marquee machine. The
// moved flag disambiguates a click from a drag; suppressClick swallows the
// click that follows a completed marquee on the same cell.
type dragState struct {
	active           bool
	anchorX, anchorY int
	x, y             int
	moved            bool
	ctrl             bool
	noMarquee        bool

	suppressClick      bool
	suppressX, suppressY int

	lastClickTime   time.Time
	lastClickWindow int
}

// marqueeRect returns the highlight rectangle of an in-progress drag.
func (m *Model) marqueeRect() (Rect, bool) {
	d := m.drag
	if !d.active || !d.moved || d.ctrl || d.noMarquee {
		return Rect{}, false
	}
	return rectBetween(d.anchorX, d.anchorY, d.x, d.y), true
}

func (m *Model) cancelDrag() {
	m.drag.active = false
	m.drag.moved = false
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if m.mode == ModeSplitChoice {
		return m.handleModalMouse(ev)
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBoard(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBoard(1)
		return nil
	}
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			m.beginDrag(ev)
		}
	case tea.MouseActionMotion:
		if m.drag.active {
			if ev.X != m.drag.anchorX || ev.Y != m.drag.anchorY {
				m.drag.moved = true
			}
			m.drag.x = ev.X
			m.drag.y = ev.Y
			// Terminals report modifiers on every event; track ctrl so
			// the highlight follows the key currently held.
			m.drag.ctrl = ev.Ctrl
		}
	case tea.MouseActionRelease:
		return m.finishDrag(ev)
	}
	return nil
}

func (m *Model) beginDrag(ev tea.MouseMsg) {
	prev := m.drag
	m.drag = dragState{
		active:  true,
		anchorX: ev.X, anchorY: ev.Y,
		x: ev.X, y: ev.Y,
		ctrl: ev.Ctrl,

		suppressClick: prev.suppressClick,
		suppressX:     prev.suppressX,
		suppressY:     prev.suppressY,

		lastClickTime:   prev.lastClickTime,
		lastClickWindow: prev.lastClickWindow,
	}
	// A press on a ✕ control or footer button is a click gesture only.
	if m.closeControlAt(ev.X, ev.Y) != 0 || m.buttonAt(ev.X, ev.Y) != "" {
		m.drag.noMarquee = true
	}
}

func (m *Model) finishDrag(ev tea.MouseMsg) tea.Cmd {
	d := m.drag
	if !d.active {
		return nil
	}
	m.drag.active = false
	m.drag.moved = false

	if d.moved && !d.noMarquee {
		// The modifiers held at release decide the outcome.
		if ev.Ctrl {
			return nil
		}
		rect := rectBetween(d.anchorX, d.anchorY, ev.X, ev.Y)
		ids := m.tabsInRect(rect)
		if len(ids) == 0 {
			return nil
		}
		if ev.Shift {
			m.selection.UnionTabs(ids)
		} else {
			m.selection.ReplaceTabs(ids)
		}
		m.drag.suppressClick = true
		m.drag.suppressX = ev.X
		m.drag.suppressY = ev.Y
		return nil
	}
	return m.routeClick(ev, d)
}

func (m *Model) routeClick(ev tea.MouseMsg, d dragState) tea.Cmd {
	if m.drag.suppressClick {
		same := ev.X == m.drag.suppressX && ev.Y == m.drag.suppressY
		m.drag.suppressClick = false
		if same {
			return nil
		}
	}

	if tabID := m.closeControlAt(ev.X, ev.Y); tabID != 0 {
		return m.closeTab(tabID)
	}

	switch m.buttonAt(ev.X, ev.Y) {
	case "merge":
		return m.advanceMerge()
	case "merge-all":
		return m.mergeAll()
	case "split":
		return m.splitCurrent()
	}

	if windowID, ok := m.stripWindowAt(ev.X, ev.Y); ok {
		return m.clickStripWindow(windowID, d)
	}

	if card, ok := m.cardAt(ev.X, ev.Y); ok {
		m.board.Cursor = card.index
		m.syncViewport()
		if d.ctrl {
			m.selection.ToggleTab(card.tabID)
		} else {
			m.selection.ClickTab(card.tabID)
		}
		return nil
	}
	return nil
}

// clickStripWindow routes a click on a window strip row: plain click
// activates the window, ctrl toggles its tabs as a unit, and a quick
// second click activates plus unions.
func (m *Model) clickStripWindow(windowID int, d dragState) tea.Cmd {
	win, ok := m.windows.Window(windowID)
	if !ok {
		return nil
	}
	if d.ctrl {
		m.selection.ToggleWindow(windowID, win.TabIDs())
		return nil
	}
	now := time.Now()
	double := windowID == d.lastClickWindow && now.Sub(d.lastClickTime) <= doubleClickWindow
	m.drag.lastClickTime = now
	m.drag.lastClickWindow = windowID
	m.setActiveWindow(windowID)
	events.Window.Activate(windowID)
	if double {
		m.selection.UnionWindow(windowID, win.TabIDs())
		m.drag.lastClickTime = time.Time{}
		m.drag.lastClickWindow = 0
	}
	return nil
}

func (m *Model) handleModalMouse(ev tea.MouseMsg) tea.Cmd {
	if ev.Button != tea.MouseButtonLeft {
		return nil
	}
	for i, rect := range m.layout.modalItems {
		if !rect.Contains(ev.X, ev.Y) {
			continue
		}
		switch ev.Action {
		case tea.MouseActionPress:
			m.splitCursor = i
		case tea.MouseActionRelease:
			m.splitCursor = i
			return m.confirmSplitChoice()
		}
	}
	return nil
}

func (m *Model) scrollBoard(delta int) {
	if m.columns < 1 {
		m.columns = 1
	}
	totalRows := (len(m.board.Cards) + m.columns - 1) / m.columns
	maxOffset := totalRows - m.maxVisibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.board.ViewportOffset += delta
	if m.board.ViewportOffset < 0 {
		m.board.ViewportOffset = 0
	}
	if m.board.ViewportOffset > maxOffset {
		m.board.ViewportOffset = maxOffset
	}
}

// tabsInRect returns the ids of cards whose rectangles intersect the
// marquee, in card order. Staged cards are frozen; the marquee passes
// over them.
func (m *Model) tabsInRect(rect Rect) []int {
	var ids []int
	for _, card := range m.layout.cards {
		if !card.rect.Intersects(rect) {
			continue
		}
		if m.selection.Staged(card.tabID) {
			continue
		}
		ids = append(ids, card.tabID)
	}
	return ids
}

func (m *Model) cardAt(x, y int) (cardRect, bool) {
	for _, card := range m.layout.cards {
		if card.rect.Contains(x, y) {
			return card, true
		}
	}
	return cardRect{}, false
}

func (m *Model) closeControlAt(x, y int) int {
	for _, card := range m.layout.cards {
		if card.close.W > 0 && card.close.Contains(x, y) {
			return card.tabID
		}
	}
	return 0
}

func (m *Model) stripWindowAt(x, y int) (int, bool) {
	for _, row := range m.layout.strip {
		if row.rect.Contains(x, y) {
			return row.windowID, true
		}
	}
	return 0, false
}

func (m *Model) buttonAt(x, y int) string {
	for _, btn := range m.layout.buttons {
		if btn.rect.Contains(x, y) {
			return btn.id
		}
	}
	return ""
}
