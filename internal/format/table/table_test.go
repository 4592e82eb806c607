package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"▌", "window 1", "3 tabs"},
		{" ", "window 12", "1 tab"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"▌  window 1   3 tabs",
		"   window 12   1 tab",
	}
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatCenterAlignment(t *testing.T) {
	rows := [][]string{
		{"abcde"},
		{"x"},
	}
	got := Format(rows, []Alignment{AlignCenter})
	if got[0] != "abcde" {
		t.Fatalf("row 0 = %q", got[0])
	}
	if got[1] != "  x  " {
		t.Fatalf("row 1 = %q", got[1])
	}
}

func TestFormatEmptyRows(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %v", got)
	}
}

func TestFormatMissingAlignmentDefaultsLeft(t *testing.T) {
	rows := [][]string{
		{"a", "bb"},
		{"cc", "d"},
	}
	got := Format(rows, []Alignment{AlignRight})
	if got[0] != " a  bb" {
		t.Fatalf("row 0 = %q", got[0])
	}
	if got[1] != "cc  d " {
		t.Fatalf("row 1 = %q", got[1])
	}
}

func TestFormatCountsRunesNotBytes(t *testing.T) {
	rows := [][]string{
		{"● active"},
		{"inactive"},
	}
	got := Format(rows, []Alignment{AlignLeft})
	if len([]rune(got[0])) != len([]rune(got[1])) {
		t.Fatalf("rows differ in rune width: %q vs %q", got[0], got[1])
	}
}
