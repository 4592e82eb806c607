package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/backend"
	"github.com/atomicstack/tab-merge-control/internal/bridge"
	"github.com/atomicstack/tab-merge-control/internal/data/dispatcher"
	"github.com/atomicstack/tab-merge-control/internal/merge"
	"github.com/atomicstack/tab-merge-control/internal/state"
	"github.com/atomicstack/tab-merge-control/internal/theme"
	"github.com/atomicstack/tab-merge-control/internal/ui/command"
	uistate "github.com/atomicstack/tab-merge-control/internal/ui/state"
)

type board = uistate.Board

type Mode int

const (
	ModeBoard Mode = iota
	ModeSplitChoice
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the tab board.
type Model struct {
	board             *board
	busy              bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendLastErr    string
	showFooter        bool
	verbose           bool
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	mode       Mode
	host       bridge.Host
	windows    state.WindowStore
	selection  *merge.Selection
	dispatcher *dispatcher.Dispatcher

	stripCursor int
	columns     int

	drag   dragState
	layout layout

	splitWindowID int
	splitCursor   int
}

// NewModel initialises the UI state with the window store and configuration.
func NewModel(host bridge.Host, width, height int, showFooter, verbose bool, watcher *backend.Watcher) *Model {
	windows := state.NewWindowStore()
	selection := merge.NewSelection()
	m := &Model{
		board:      uistate.NewBoard(),
		bus:        command.New(),
		backend:    watcher,
		showFooter: showFooter,
		verbose:    verbose,
		mode:       ModeBoard,
		host:       host,
		windows:    windows,
		selection:  selection,
		dispatcher: dispatcher.New(windows, selection),
		columns:    1,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(merge.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) mergeContext() merge.Context {
	return merge.Context{
		Host:           m.host,
		Windows:        m.windows.Entries(),
		ActiveWindowID: m.windows.ActiveID(),
	}
}

// activeWindow returns the window whose tabs fill the card grid.
func (m *Model) activeWindow() (merge.WindowEntry, bool) {
	return m.windows.Window(m.windows.ActiveID())
}

// setActiveWindow switches the card grid to another window and rebuilds
// the board, dropping any filter that belonged to the previous window.
func (m *Model) setActiveWindow(id int) {
	if id == m.windows.ActiveID() {
		return
	}
	m.windows.SetActive(id)
	m.board.SetFilter("", 0)
	m.board.Filtering = false
	m.syncBoard()
}

// syncBoard rebuilds the card list from the active window's tabs.
func (m *Model) syncBoard() {
	if win, ok := m.activeWindow(); ok {
		m.board.SetCards(uistate.CardsFromTabs(win.Tabs))
	} else {
		m.board.SetCards(nil)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.board.EnsureCursorVisible(m.maxVisibleRows(), m.columns)
}

// startAction runs one host action through the bus. Refused while another
// action is still in flight.
func (m *Model) startAction(id, label string, handler command.Action) tea.Cmd {
	if m.busy {
		m.setInfo("busy: " + m.pendingLabel)
		return nil
	}
	m.busy = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	return m.bus.Execute(m.mergeContext(), command.Request{ID: id, Label: label, Handler: handler})
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
