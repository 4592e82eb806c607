package state

// MoveCursorBy moves the card cursor by delta, clamping to the grid.
func (b *Board) MoveCursorBy(delta int) bool {
	if len(b.Cards) == 0 {
		b.Cursor = 0
		return false
	}
	old := b.Cursor
	if b.Cursor < 0 {
		b.Cursor = 0
	}
	b.Cursor += delta
	if b.Cursor < 0 {
		b.Cursor = 0
	}
	if b.Cursor >= len(b.Cards) {
		b.Cursor = len(b.Cards) - 1
	}
	return b.Cursor != old
}

// MoveCursorRow moves the cursor a whole grid row up or down.
func (b *Board) MoveCursorRow(delta, columns int) bool {
	if columns < 1 {
		columns = 1
	}
	return b.MoveCursorBy(delta * columns)
}

// MoveCursorHome moves the cursor to the first card.
func (b *Board) MoveCursorHome() bool {
	if len(b.Cards) == 0 {
		b.Cursor = 0
		return false
	}
	old := b.Cursor
	b.Cursor = 0
	return old != 0
}

// MoveCursorEnd moves the cursor to the last card.
func (b *Board) MoveCursorEnd() bool {
	n := len(b.Cards)
	if n == 0 {
		b.Cursor = 0
		return false
	}
	old := b.Cursor
	b.Cursor = n - 1
	return old != b.Cursor
}

// EnsureCursorVisible adjusts the row-based viewport offset so the cursor's
// grid row stays on screen.
func (b *Board) EnsureCursorVisible(maxRows, columns int) {
	if len(b.Cards) == 0 {
		b.Cursor = 0
		b.ViewportOffset = 0
		return
	}
	if columns < 1 {
		columns = 1
	}
	if b.Cursor < 0 {
		b.Cursor = 0
	}
	if b.Cursor >= len(b.Cards) {
		b.Cursor = len(b.Cards) - 1
	}
	if maxRows <= 0 {
		b.ViewportOffset = 0
		return
	}
	totalRows := (len(b.Cards) + columns - 1) / columns
	maxOffset := totalRows - maxRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if b.ViewportOffset > maxOffset {
		b.ViewportOffset = maxOffset
	}
	if b.ViewportOffset < 0 {
		b.ViewportOffset = 0
	}
	row := b.Cursor / columns
	if row < b.ViewportOffset {
		b.ViewportOffset = row
	}
	upper := b.ViewportOffset + maxRows - 1
	if row > upper {
		b.ViewportOffset = row - maxRows + 1
		if b.ViewportOffset < 0 {
			b.ViewportOffset = 0
		}
		if b.ViewportOffset > maxOffset {
			b.ViewportOffset = maxOffset
		}
	}
}
