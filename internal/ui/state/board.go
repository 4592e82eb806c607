package state

import "github.com/atomicstack/tab-merge-control/internal/merge"

// Card is one tab rendered on the board.
type Card struct {
	TabID  int
	Title  string
	URL    string
	Active bool
}

// Board tracks the card grid for the active window: the full card list,
// the filtered view, cursor position and viewport scroll, plus the filter
// text state.
type Board struct {
	Cards []Card // filtered view
	Full  []Card

	Cursor         int
	ViewportOffset int
	LastCursor     int

	Filter       string
	FilterCursor int
	Filtering    bool
}

func NewBoard() *Board {
	return &Board{LastCursor: -1}
}

// SetCards replaces the card list, re-applies the filter and keeps the
// cursor on the same tab when it survives the update.
func (b *Board) SetCards(cards []Card) {
	keep := 0
	if c, ok := b.CardAt(b.Cursor); ok {
		keep = c.TabID
	}
	b.Full = CloneCards(cards)
	b.applyFilter()
	if keep != 0 {
		for i, c := range b.Cards {
			if c.TabID == keep {
				b.Cursor = i
				return
			}
		}
	}
	if b.Cursor >= len(b.Cards) {
		b.Cursor = len(b.Cards) - 1
	}
	if b.Cursor < 0 {
		b.Cursor = 0
	}
}

// CardAt returns the filtered card at the given index.
func (b *Board) CardAt(idx int) (Card, bool) {
	if idx < 0 || idx >= len(b.Cards) {
		return Card{}, false
	}
	return b.Cards[idx], true
}

// CursorCard returns the card under the keyboard cursor.
func (b *Board) CursorCard() (Card, bool) {
	return b.CardAt(b.Cursor)
}

// CardsFromTabs converts window tabs into board cards.
func CardsFromTabs(tabs []merge.TabEntry) []Card {
	cards := make([]Card, len(tabs))
	for i, t := range tabs {
		cards[i] = Card{TabID: t.ID, Title: t.Title, URL: t.URL, Active: t.Active}
	}
	return cards
}

// CloneCards returns a defensive copy of the card slice.
func CloneCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]Card, len(cards))
	copy(dup, cards)
	return dup
}
