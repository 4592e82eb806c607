package state

import "testing"

func TestFilterCardsMatchesTitleAndURL(t *testing.T) {
	cards := sampleCards()
	got := FilterCards(cards, "wiki")
	if len(got) != 1 || got[0].TabID != 3 {
		t.Fatalf("expected wiki card, got %v", got)
	}
	got = FilterCards(cards, "issues.example")
	if len(got) != 1 || got[0].TabID != 2 {
		t.Fatalf("expected URL match, got %v", got)
	}
}

func TestFilterCardsEmptyQueryReturnsAll(t *testing.T) {
	cards := sampleCards()
	got := FilterCards(cards, "   ")
	if len(got) != len(cards) {
		t.Fatalf("expected all cards, got %d", len(got))
	}
}

func TestSetFilterMovesCursorToBestMatch(t *testing.T) {
	b := NewBoard()
	b.SetCards(sampleCards())
	b.Cursor = 3
	b.SetFilter("mail", 4)
	if card, _ := b.CursorCard(); card.TabID != 1 {
		t.Fatalf("expected cursor on mail card, got %d", card.TabID)
	}
}

func TestClearingFilterRestoresCursor(t *testing.T) {
	b := NewBoard()
	b.SetCards(sampleCards())
	b.Cursor = 2
	b.SetFilter("mail", 4)
	b.SetFilter("", 0)
	if b.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", b.Cursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	b := NewBoard()
	b.SetCards(sampleCards())
	if !b.InsertFilterText("wik") {
		t.Fatalf("insert failed")
	}
	if b.Filter != "wik" || b.FilterCursorPos() != 3 {
		t.Fatalf("unexpected filter state %q pos %d", b.Filter, b.FilterCursorPos())
	}
	if !b.DeleteFilterRuneBackward() || b.Filter != "wi" {
		t.Fatalf("expected backspace to trim, got %q", b.Filter)
	}
	if !b.DeleteFilterWordBackward() || b.Filter != "" {
		t.Fatalf("expected word delete to clear, got %q", b.Filter)
	}
	if b.DeleteFilterRuneBackward() {
		t.Fatalf("backspace on empty filter must report false")
	}
}

func TestFilterCursorMovement(t *testing.T) {
	b := NewBoard()
	b.SetCards(sampleCards())
	b.InsertFilterText("abc")
	if !b.MoveFilterCursorStart() || b.FilterCursorPos() != 0 {
		t.Fatalf("expected cursor at start")
	}
	if !b.MoveFilterCursorRuneForward() || b.FilterCursorPos() != 1 {
		t.Fatalf("expected cursor at 1")
	}
	if !b.MoveFilterCursorEnd() || b.FilterCursorPos() != 3 {
		t.Fatalf("expected cursor at end")
	}
	if b.MoveFilterCursorRuneForward() {
		t.Fatalf("cursor already at end")
	}
}

func TestBestMatchIndexPrefersPrefix(t *testing.T) {
	cards := []Card{
		{TabID: 1, Title: "deep wiki page"},
		{TabID: 2, Title: "wiki"},
	}
	if got := BestMatchIndex(cards, "wiki"); got != 1 {
		t.Fatalf("expected exact title match at 1, got %d", got)
	}
}
