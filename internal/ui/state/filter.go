package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position.
func (b *Board) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(b.Filter)
	restore := -1
	b.Filter = query
	runes := []rune(b.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	b.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			b.LastCursor = b.Cursor
		}
		b.Cursor = 0
	} else if prevTrimmed != "" {
		restore = b.LastCursor
	}
	b.applyFilter()
	if trimmed != "" && len(b.Cards) > 0 {
		if idx := BestMatchIndex(b.Cards, trimmed); idx >= 0 {
			b.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(b.Cards) {
			b.Cursor = restore
		} else if len(b.Cards) > 0 {
			b.Cursor = len(b.Cards) - 1
		}
		b.LastCursor = -1
	}
}

func (b *Board) applyFilter() {
	b.Cards = FilterCards(b.Full, b.Filter)
	if len(b.Cards) == 0 {
		b.Cursor = 0
		b.ViewportOffset = 0
		return
	}
	if b.Cursor < 0 || b.Cursor >= len(b.Cards) {
		b.Cursor = len(b.Cards) - 1
	}
	if b.ViewportOffset > len(b.Cards)-1 {
		b.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (b *Board) FilterCursorPos() int {
	runes := []rune(b.Filter)
	if b.FilterCursor < 0 {
		return 0
	}
	if b.FilterCursor > len(runes) {
		return len(runes)
	}
	return b.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (b *Board) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(b.Filter)
	pos := b.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	b.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (b *Board) DeleteFilterRuneBackward() bool {
	runes := []rune(b.Filter)
	pos := b.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	b.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (b *Board) DeleteFilterWordBackward() bool {
	runes := []rune(b.Filter)
	pos := b.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	b.SetFilter(string(updated), i)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (b *Board) MoveFilterCursorStart() bool {
	if b.FilterCursorPos() == 0 {
		return false
	}
	b.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (b *Board) MoveFilterCursorEnd() bool {
	end := len([]rune(b.Filter))
	if b.FilterCursorPos() == end {
		return false
	}
	b.FilterCursor = end
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (b *Board) MoveFilterCursorRuneBackward() bool {
	if b.FilterCursorPos() == 0 {
		return false
	}
	b.FilterCursor = b.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (b *Board) MoveFilterCursorRuneForward() bool {
	runes := []rune(b.Filter)
	pos := b.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	b.FilterCursor = pos + 1
	return true
}

func cardLabel(c Card) string {
	if c.URL == "" {
		return c.Title
	}
	return c.Title + " " + c.URL
}

// FilterCards returns cards whose title or URL matches the filter string,
// ranked matches first, plain substring matches as a fallback.
func FilterCards(cards []Card, query string) []Card {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneCards(cards)
	}
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = cardLabel(c)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Card, 0, len(matches))
		for idx, c := range cards {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			return CloneCards(filtered)
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Card, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Title), lower) ||
			strings.Contains(strings.ToLower(c.URL), lower) {
			filtered = append(filtered, c)
		}
	}
	return CloneCards(filtered)
}

// BestMatchIndex returns the best index for the query among the cards.
func BestMatchIndex(cards []Card, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		if len(cards) == 0 {
			return -1
		}
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, c := range cards {
		if strings.EqualFold(c.Title, trimmed) {
			return i
		}
	}
	for i, c := range cards {
		if strings.HasPrefix(strings.ToLower(c.Title), lower) {
			return i
		}
	}
	for i, c := range cards {
		if strings.Contains(strings.ToLower(c.Title), lower) ||
			strings.Contains(strings.ToLower(c.URL), lower) {
			return i
		}
	}
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = cardLabel(c)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		if len(cards) == 0 {
			return -1
		}
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(cards) {
		return 0
	}
	return best.OriginalIndex
}
