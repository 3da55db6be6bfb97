package microtable

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Glyphs of the light box-drawing set produced by [ConsoleRenderer]. The
// formatters in this package parse grids made of these characters.
const (
	glyphTopLeft     = "┌"
	glyphTopRight    = "┐"
	glyphBottomLeft  = "└"
	glyphBottomRight = "┘"
	glyphHorizontal  = "─"
	glyphVertical    = "│"
	glyphTopTee      = "┬"
	glyphBottomTee   = "┴"
	glyphLeftTee     = "├"
	glyphRightTee    = "┤"
	glyphCross       = "┼"
)

const borderGlyphs = glyphTopLeft + glyphTopRight + glyphBottomLeft + glyphBottomRight +
	glyphHorizontal + glyphTopTee + glyphBottomTee + glyphLeftTee + glyphRightTee + glyphCross

// junctionGlyphs mark column boundaries on border lines.
const junctionGlyphs = glyphTopTee + glyphCross + glyphBottomTee

// widthCond measures cells. Box-drawing glyphs are East Asian ambiguous, so
// the condition is pinned to narrow instead of following the locale.
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

func textWidth(s string) int {
	return widthCond.StringWidth(s)
}

type lineKind int

const (
	plainLine lineKind = iota
	borderLine
	dataLine
)

func classify(line string) lineKind {
	if strings.Contains(line, glyphVertical) {
		return dataLine
	}
	if isBorder(line) {
		return borderLine
	}
	return plainLine
}

func isBorder(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune(borderGlyphs, r) {
			return false
		}
	}
	return true
}

// splitCells splits a data line on the vertical glyph. The first and last
// segments hold whatever surrounds the outer delimiters and are not cells.
func splitCells(line string) []string {
	return strings.Split(line, glyphVertical)
}

// headerSeparator returns the first border line that opens with a left tee.
func headerSeparator(rows []string) (string, bool) {
	for _, row := range rows {
		if strings.HasPrefix(row, glyphLeftTee) && isBorder(row) {
			return row, true
		}
	}
	return "", false
}

// columnWidths infers per-column widths from the header separator. Each
// width covers the cell text plus its one-space padding on either side.
// It returns nil when rows has no header separator.
func columnWidths(rows []string) []int {
	sep, ok := headerSeparator(rows)
	if !ok {
		return nil
	}
	inner := strings.TrimPrefix(sep, glyphLeftTee)
	inner = strings.TrimSuffix(inner, glyphRightTee)
	segments := strings.Split(inner, glyphCross)
	widths := make([]int, len(segments))
	for i, seg := range segments {
		widths[i] = textWidth(strings.TrimSpace(seg))
	}
	return widths
}

// widthAt returns the inferred width for interior cell i (1-based, as
// produced by splitCells) or fallback when none was inferred.
func widthAt(widths []int, i, fallback int) int {
	if i-1 < len(widths) && widths[i-1] > 0 {
		return widths[i-1]
	}
	return fallback
}
