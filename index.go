package microtable

import (
	"strings"
	"unicode/utf8"
)

// IndexHeading is the heading the renderer gives the synthetic index column.
const IndexHeading = "(index)"

const defaultIndexHeading = "Index"

// IndexOptions selects what [IndexColumn] does with the index column.
type IndexOptions struct {
	// Remove drops the column. It wins over Heading.
	Remove bool
	// Heading replaces the "(index)" label. Defaults to "Index".
	Heading string
}

// IndexColumn returns a formatter that removes or renames the leading
// index column. A nil opt removes the column.
//
//	┌─────────┬─────────┐      ┌─────────┐
//	│ (index) │ Numbers │      │ Numbers │
//	├─────────┼─────────┤  →   ├─────────┤
//	│ 0       │ 30      │      │ 30      │
//	└─────────┴─────────┘      └─────────┘
func IndexColumn(opt *IndexOptions) RowFormatter {
	if opt == nil || opt.Remove {
		return Map(removeFirstColumn)
	}
	heading := opt.Heading
	if heading == "" {
		heading = defaultIndexHeading
	}
	return Map(func(row string) string {
		return renameIndex(row, heading)
	})
}

// RemoveIndexColumn is shorthand for IndexColumn(nil).
func RemoveIndexColumn() RowFormatter {
	return IndexColumn(nil)
}

// RenameIndexColumn is shorthand for IndexColumn(&IndexOptions{Heading: heading}).
func RenameIndexColumn(heading string) RowFormatter {
	return IndexColumn(&IndexOptions{Heading: heading})
}

// removeFirstColumn keeps the leading glyph of row and drops everything up
// to and including the first column boundary. Border lines split on
// junctions, data lines on the vertical glyph. Rows with a single column or
// no grid structure are returned as is.
func removeFirstColumn(row string) string {
	first, size := utf8.DecodeRuneInString(row)
	if size == 0 || !strings.ContainsRune(borderGlyphs+glyphVertical, first) {
		return row
	}
	rest := row[size:]
	var cut int
	switch classify(row) {
	case dataLine:
		cut = strings.Index(rest, glyphVertical)
	case borderLine:
		cut = strings.IndexAny(rest, junctionGlyphs)
	default:
		return row
	}
	if cut < 0 {
		return row
	}
	_, boundary := utf8.DecodeRuneInString(rest[cut:])
	tail := rest[cut+boundary:]
	if tail == "" {
		return row
	}
	return row[:size] + tail
}

func renameIndex(row, heading string) string {
	if !strings.Contains(row, IndexHeading) {
		return row
	}
	parts := splitCells(row)
	for i := 1; i < len(parts)-1; i++ {
		if !strings.Contains(parts[i], IndexHeading) {
			continue
		}
		width := textWidth(parts[i])
		parts[i] = padRight(strings.Replace(parts[i], IndexHeading, heading, 1), width)
		return strings.Join(parts, glyphVertical)
	}
	return strings.Replace(row, IndexHeading, heading, 1)
}
