package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

const gutter = "  "

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gutter)
			}
			pad := widths[c] - cellWidth(cell)
			if pad < 0 {
				pad = 0
			}
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			switch align {
			case AlignRight:
				writeSpaces(&b, pad)
				b.WriteString(cell)
			case AlignCenter:
				writeSpaces(&b, pad/2)
				b.WriteString(cell)
				writeSpaces(&b, pad-pad/2)
			default:
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func cellWidth(text string) int {
	return len([]rune(text))
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
