package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tab-merge-control/internal/format/table"
	"github.com/atomicstack/tab-merge-control/internal/logging/events"
	"github.com/atomicstack/tab-merge-control/internal/merge"
	uistate "github.com/atomicstack/tab-merge-control/internal/ui/state"
)

const (
	cardTargetWidth = 32
	cardMinWidth    = 20
	cardGap         = 1
	cardHeight      = 4 // border + title + url + border
)

// View implements tea.Model. Rendering also rebuilds the hit-testing
// layout so mouse handling always matches what is on screen.
func (m *Model) View() string {
	m.layout = layout{}
	m.columns = m.computeColumns()

	out := make([]string, 0, 32)
	out = append(out, m.renderHeader())
	out = m.renderStrip(out)
	out = append(out, "")

	if m.mode == ModeSplitChoice {
		out = m.renderSplitChoice(out)
	} else {
		out = m.renderGrid(out)
	}

	if info := m.currentInfo(); info != "" {
		out = append(out, "", render(styles.Info, info))
	}
	out = m.renderButtons(out)
	if m.showFooter {
		out = append(out, render(styles.Footer,
			"arrows move  space toggle  m merge  a merge all  s split  b split window  esc reset  ctrl+c quit"))
	}

	out = m.padToHeight(out)
	status := ""
	switch {
	case m.errMsg != "":
		status = render(styles.Error, "Error: "+m.errMsg)
	case m.backendLastErr != "":
		status = render(styles.Error, "Error: "+m.backendLastErr)
	case m.busy:
		status = render(styles.Info, "working: "+m.pendingLabel)
	}
	out = append(out, status, m.filterPrompt())
	return strings.Join(out, "\n")
}

func (m *Model) renderHeader() string {
	entries := m.windows.Entries()
	tabs := 0
	for _, w := range entries {
		tabs += len(w.Tabs)
	}
	header := fmt.Sprintf("tab merge control: %d windows, %d tabs", len(entries), tabs)
	if stage := m.selection.Stage(); stage != merge.StageIdle {
		header += fmt.Sprintf("  [%s]", stage)
	}
	return render(styles.Header, header)
}

// renderStrip draws one aligned row per window and records its rectangle.
func (m *Model) renderStrip(out []string) []string {
	entries := m.windows.Entries()
	if len(entries) == 0 {
		return append(out, render(styles.Info, "(no windows yet, waiting for the extension)"))
	}
	rows := make([][]string, len(entries))
	for i, win := range entries {
		marker := " "
		if i == m.stripCursor {
			marker = "▌"
		}
		tag := ""
		switch m.selection.WindowColour(win.TabIDs()) {
		case merge.ColourSource:
			tag = "[source]"
		case merge.ColourTarget:
			tag = "[target]"
		case merge.ColourCurrent:
			tag = "[selected]"
		}
		count := fmt.Sprintf("%d tabs", len(win.Tabs))
		if len(win.Tabs) == 1 {
			count = "1 tab"
		}
		rows[i] = []string{marker, fmt.Sprintf("window %d", win.ID), count, tag}
	}
	formatted := table.Format(rows, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft,
	})
	for i, win := range entries {
		style := styles.WindowRow
		if win.ID == m.windows.ActiveID() {
			style = styles.ActiveWindow
		}
		switch m.selection.WindowColour(win.TabIDs()) {
		case merge.ColourSource:
			style = styles.Source
		case merge.ColourTarget:
			style = styles.Target
		case merge.ColourCurrent:
			style = styles.Current
		}
		y := len(out)
		m.layout.strip = append(m.layout.strip, stripRect{
			windowID: win.ID,
			rect:     Rect{X: 0, Y: y, W: m.lineWidth(), H: 1},
		})
		out = append(out, render(style, formatted[i]))
	}
	return out
}

// renderGrid draws the active window's cards in rows, recording card and
// ✕ rectangles for the mouse.
func (m *Model) renderGrid(out []string) []string {
	if _, ok := m.activeWindow(); !ok {
		return out
	}
	cards := m.board.Cards
	if len(cards) == 0 {
		msg := "(window has no tabs)"
		if strings.TrimSpace(m.board.Filter) != "" {
			msg = fmt.Sprintf("No matches for %q", m.board.Filter)
		}
		return append(out, render(styles.Info, msg))
	}

	cols := m.columns
	cardW := m.cardWidth(cols)
	maxRows := m.maxVisibleRows()
	m.board.EnsureCursorVisible(maxRows, cols)

	totalRows := (len(cards) + cols - 1) / cols
	startRow := m.board.ViewportOffset
	endRow := totalRows
	if maxRows > 0 && startRow+maxRows < endRow {
		endRow = startRow + maxRows
	}

	marquee, hasMarquee := m.marqueeRect()

	for row := startRow; row < endRow; row++ {
		y := len(out)
		rendered := make([]string, 0, cols)
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(cards) {
				break
			}
			x := col * (cardW + cardGap)
			rect := Rect{X: x, Y: y, W: cardW, H: cardHeight}
			closeRect := Rect{X: x + cardW - 2, Y: y + 1, W: 1, H: 1}
			m.layout.cards = append(m.layout.cards, cardRect{
				tabID: cards[idx].TabID,
				index: idx,
				rect:  rect,
				close: closeRect,
			})
			highlight := hasMarquee && rect.Intersects(marquee) &&
				!m.selection.Staged(cards[idx].TabID)
			rendered = append(rendered, m.renderCard(cards[idx], idx, cardW, highlight))
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, interleaveGaps(rendered)...)
		out = append(out, strings.Split(joined, "\n")...)
	}
	return out
}

func interleaveGaps(cells []string) []string {
	if len(cells) <= 1 {
		return cells
	}
	gap := strings.Repeat(" ", cardGap)
	out := make([]string, 0, len(cells)*2-1)
	for i, cell := range cells {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, cell)
	}
	return out
}

// renderCard draws one bordered tab card. The border colour follows the
// selection set (source > target > current), the marquee highlight wins
// over everything, and the keyboard cursor shows when unselected.
func (m *Model) renderCard(card uistate.Card, idx, width int, marquee bool) string {
	colour := m.selection.ColourFor(card.TabID)

	border := *styles.Card
	switch {
	case marquee:
		border = border.BorderForeground(styles.Marquee.GetForeground())
	case colour == merge.ColourSource:
		border = border.BorderForeground(styles.Source.GetForeground())
	case colour == merge.ColourTarget:
		border = border.BorderForeground(styles.Target.GetForeground())
	case colour == merge.ColourCurrent:
		border = border.BorderForeground(styles.Current.GetForeground())
	case idx == m.board.Cursor:
		border = *styles.CardCursor
	}

	innerW := width - 2
	if innerW < 4 {
		innerW = 4
	}

	marker := "  "
	if card.Active {
		marker = "● "
	}
	badge := ""
	if colour == merge.ColourSource || colour == merge.ColourTarget {
		badge = render(styles.StagedBadge, "[staged]")
	}
	dismiss := render(styles.Dismiss, "✕")

	title := card.Title
	if title == "" {
		title = "(untitled)"
	}
	titleAvail := innerW - lipgloss.Width(marker) - lipgloss.Width(badge) - 2
	if titleAvail < 1 {
		titleAvail = 1
	}
	titleSeg := render(styles.CardTitle, fitTo(title, titleAvail))
	titleLine := marker + titleSeg + badge
	titleLine = padTo(titleLine, innerW-2) + " " + dismiss

	urlLine := padTo(render(styles.CardURL, fitTo(card.URL, innerW)), innerW)

	return border.Render(titleLine + "\n" + urlLine)
}

func (m *Model) renderSplitChoice(out []string) []string {
	win, ok := m.windows.Window(m.splitWindowID)
	if !ok {
		return out
	}
	out = append(out, render(styles.Header, fmt.Sprintf("split window %d", win.ID)))
	options := []string{
		"move other tabs to a new window",
		"move the active tab to a new window",
	}
	for i, opt := range options {
		marker := "  "
		style := styles.WindowRow
		if i == m.splitCursor {
			marker = "▌ "
			style = styles.ActiveWindow
		}
		y := len(out)
		m.layout.modalItems = append(m.layout.modalItems, Rect{X: 0, Y: y, W: m.lineWidth(), H: 1})
		out = append(out, render(style, marker+opt))
	}
	out = append(out, render(styles.Footer, "enter confirm  esc cancel"))
	return out
}

func (m *Model) renderButtons(out []string) []string {
	type button struct {
		id    string
		label string
	}
	mergeLabel := "merge: pick source"
	switch m.selection.Stage() {
	case merge.StageSourceStaged:
		mergeLabel = "merge: pick target"
	case merge.StageTargetStaged:
		mergeLabel = "merge: execute"
	}
	buttons := []button{
		{id: "merge", label: mergeLabel},
		{id: "merge-all", label: "merge all"},
		{id: "split", label: "split"},
	}
	y := len(out)
	x := 0
	var b strings.Builder
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString("  ")
			x += 2
		}
		style := styles.FooterButton
		if btn.id == m.pendingID || (btn.id == "merge" && m.pendingID == merge.ActionMergeExecute) {
			style = styles.FooterPressed
		}
		text := render(style, "[ "+btn.label+" ]")
		w := lipgloss.Width(text)
		m.layout.buttons = append(m.layout.buttons, buttonRect{
			id:   btn.id,
			rect: Rect{X: x, Y: y, W: w, H: 1},
		})
		b.WriteString(text)
		x += w
	}
	return append(out, b.String())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.columns = m.computeColumns()
	m.syncViewport()
	return nil
}

func (m *Model) computeColumns() int {
	if m.width <= 0 {
		return 1
	}
	cols := (m.width + cardGap) / (cardTargetWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m *Model) cardWidth(cols int) int {
	if m.width <= 0 {
		return cardTargetWidth
	}
	w := (m.width - cardGap*(cols-1)) / cols
	if w < cardMinWidth {
		w = cardMinWidth
	}
	return w
}

// maxVisibleRows returns how many card rows fit above the bottom bars.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 1 // header
	if n := len(m.windows.Entries()); n > 0 {
		used += n
	} else {
		used++
	}
	used++ // blank below strip
	used++ // buttons line
	used += 2 // status + filter prompt
	if m.showFooter {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	remain := (m.height - used) / cardHeight
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) lineWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 200
}

// padToHeight pads so the status and prompt lines sit at the bottom.
func (m *Model) padToHeight(out []string) []string {
	if m.height <= 0 {
		return out
	}
	target := m.height - 2
	if target < len(out) {
		return out[:target]
	}
	for len(out) < target {
		out = append(out, "")
	}
	return out
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// fitTo truncates and pads plain text to exactly width runes.
func fitTo(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) > width {
		if width == 1 {
			return string(runes[:1])
		}
		return string(runes[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-len(runes))
}

// padTo pads (or ANSI-safely truncates) styled text to width columns.
func padTo(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(text)
	if w > width {
		return truncate.StringWithTail(text, uint(width-1), "…")
	}
	return text + strings.Repeat(" ", width-w)
}
