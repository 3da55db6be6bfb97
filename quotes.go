package microtable

import "strings"

// RemoveQuotes returns a formatter that strips the quotes the renderer puts
// around string values. A cell is rewritten only when its trimmed text
// starts and ends with the same quote character (' or "); the inner text is
// kept as is and framed by single spaces. Only one layer is removed.
//
//	│ 'Satu`s' │  →  │ Satu`s │
//
// The cell shrinks by the width of the quotes and its padding; run [Align]
// afterwards to lay cells out to their column widths again. Every grid
// passed through [Format] or [Table] gets this treatment first.
func RemoveQuotes() RowFormatter {
	return func(row string, _ int, _ []string) []string {
		if !strings.Contains(row, glyphVertical) {
			return []string{row}
		}
		parts := splitCells(row)
		for i := 1; i < len(parts)-1; i++ {
			if inner, ok := unquote(strings.TrimSpace(parts[i])); ok {
				parts[i] = " " + inner + " "
			}
		}
		return []string{strings.Join(parts, glyphVertical)}
	}
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s, false
	}
	return s[1 : len(s)-1], true
}

func padRight(s string, width int) string {
	if pad := width - textWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
