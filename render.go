package microtable

import (
	"slices"
	"strconv"
	"strings"
)

// ValuesHeading is the heading of the column that holds scalar rows.
const ValuesHeading = "Values"

// Renderer produces the raw grid that the formatter pipeline works on.
// properties, when non-nil, restricts and orders the data columns.
type Renderer interface {
	Render(data any, properties []string) (string, error)
}

// ConsoleRenderer draws data in the console table layout: a light
// box-drawing grid with an "(index)" column, one column per record key, and
// a "Values" column for scalar rows. Cell values use inspect notation, so
// strings are quoted. A scalar is printed on its own without a grid.
//
// The zero value is ready to use and holds no state.
type ConsoleRenderer struct{}

// Render implements [Renderer]. The result always ends with a newline.
func (ConsoleRenderer) Render(data any, properties []string) (string, error) {
	v, err := toValue(data)
	if err != nil {
		return "", err
	}
	if v.kind == scalarValue {
		return v.plain + "\n", nil
	}

	keys, rows := tableRows(v)
	columns, hasValues := dataColumns(rows, properties)

	header := make([]string, 0, len(columns)+2)
	header = append(header, IndexHeading)
	for _, col := range columns {
		header = append(header, escapeControl(col))
	}
	if hasValues {
		header = append(header, ValuesHeading)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, 0, len(header))
		line = append(line, escapeControl(keys[i]))
		for _, col := range columns {
			line = append(line, lookup(row, col))
		}
		if hasValues {
			cell := ""
			if row.kind == scalarValue {
				cell = row.text
			}
			line = append(line, cell)
		}
		cells[i] = line
	}

	widths := computeWidths(header, cells)
	var sb strings.Builder
	drawHLine(&sb, widths, glyphTopLeft, glyphTopTee, glyphTopRight)
	drawRow(&sb, header, widths)
	drawHLine(&sb, widths, glyphLeftTee, glyphCross, glyphRightTee)
	for _, line := range cells {
		drawRow(&sb, line, widths)
	}
	drawHLine(&sb, widths, glyphBottomLeft, glyphBottomTee, glyphBottomRight)
	return sb.String(), nil
}

// tableRows returns the index labels and row values of a record or list.
func tableRows(v value) ([]string, []value) {
	if v.kind == recordValue {
		keys := make([]string, len(v.fields))
		rows := make([]value, len(v.fields))
		for i, f := range v.fields {
			keys[i] = f.key
			rows[i] = f.val
		}
		return keys, rows
	}
	keys := make([]string, len(v.items))
	for i := range v.items {
		keys[i] = strconv.Itoa(i)
	}
	return keys, v.items
}

// dataColumns collects column names in first-seen order, or takes them
// from properties when given. It also reports whether any row is a scalar.
func dataColumns(rows []value, properties []string) ([]string, bool) {
	var columns []string
	hasValues := false
	for _, row := range rows {
		switch row.kind {
		case scalarValue:
			hasValues = true
		case recordValue:
			for _, f := range row.fields {
				if !slices.Contains(columns, f.key) {
					columns = append(columns, f.key)
				}
			}
		case listValue:
			for i := range row.items {
				key := strconv.Itoa(i)
				if !slices.Contains(columns, key) {
					columns = append(columns, key)
				}
			}
		}
	}
	if properties != nil {
		columns = columns[:0:0]
		for _, p := range properties {
			if !slices.Contains(columns, p) {
				columns = append(columns, p)
			}
		}
	}
	return columns, hasValues
}

func lookup(row value, column string) string {
	switch row.kind {
	case recordValue:
		for _, f := range row.fields {
			if f.key == column {
				return cellText(f.val)
			}
		}
	case listValue:
		if i, err := strconv.Atoi(column); err == nil && i >= 0 && i < len(row.items) && strconv.Itoa(i) == column {
			return cellText(row.items[i])
		}
	}
	return ""
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = textWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := textWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func drawHLine(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(glyphHorizontal, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}

func drawRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString(glyphVertical)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(alignCell(cell, width, AlignLeft))
		sb.WriteString(" ")
		sb.WriteString(glyphVertical)
	}
	sb.WriteString("\n")
}
