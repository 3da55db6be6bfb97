package microtable

import (
	"fmt"
	"strings"
)

// Alignment controls cell text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

var alignmentNames = map[Alignment]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// String returns the alignment name.
func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment parses "left", "center", or "right".
func ParseAlignment(s string) (Alignment, error) {
	for a, name := range alignmentNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return AlignLeft, fmt.Errorf("%w: %q", ErrUnknownAlignment, s)
}

// Align returns a formatter that re-pads every cell of a data line to its
// column width. Widths come from the header separator in rows; a cell with
// no inferred width keeps the width of its own segment. Content wider than
// the column is never truncated.
//
// Lines without the vertical glyph are returned unchanged.
func Align(a Alignment) RowFormatter {
	return func(row string, _ int, rows []string) []string {
		if !strings.Contains(row, glyphVertical) {
			return []string{row}
		}
		widths := columnWidths(rows)
		parts := splitCells(row)
		for i := 1; i < len(parts)-1; i++ {
			text := strings.TrimSpace(parts[i])
			own := max(textWidth(parts[i]), textWidth(text)+2)
			width := widthAt(widths, i, own)
			parts[i] = " " + alignCell(text, width-2, a) + " "
		}
		return []string{strings.Join(parts, glyphVertical)}
	}
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - textWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
