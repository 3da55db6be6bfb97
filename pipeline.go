package microtable

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// RowFormatter transforms one line of a rendered grid into zero or more
// lines. index is the position of row within rows, and rows is the full
// sequence the current formatter pass started from. Formatters must not
// modify rows.
type RowFormatter func(row string, index int, rows []string) []string

// Map adapts a one-to-one string function into a RowFormatter.
func Map(fn func(string) string) RowFormatter {
	return func(row string, _ int, _ []string) []string {
		return []string{fn(row)}
	}
}

// Apply runs formatters over lines in order. Each formatter sees the
// complete output of the previous one; results are flattened between
// passes. Indices passed to a formatter refer to the sequence as it was
// when that pass began, so expansions earlier in the same pass do not shift
// them. nil formatters are skipped.
func Apply(lines []string, formatters ...RowFormatter) []string {
	return apply(discardLogger, lines, formatters)
}

func apply(log logrus.FieldLogger, lines []string, formatters []RowFormatter) []string {
	current := lines
	for pos, fn := range formatters {
		if fn == nil {
			continue
		}
		next := make([]string, 0, len(current))
		for i, row := range current {
			next = append(next, fn(row, i, current)...)
		}
		log.WithFields(logrus.Fields{
			"formatter": pos,
			"lines_in":  len(current),
			"lines_out": len(next),
		}).Debug("Applied row formatter.")
		current = next
	}
	return current
}

// Format splits grid into lines, removes quote artifacts, applies
// formatters, and joins the result with newlines.
func Format(grid string, formatters ...RowFormatter) string {
	return format(discardLogger, grid, formatters)
}

func format(log logrus.FieldLogger, grid string, formatters []RowFormatter) string {
	chain := make([]RowFormatter, 0, len(formatters)+1)
	chain = append(chain, RemoveQuotes())
	chain = append(chain, formatters...)
	return strings.Join(apply(log, strings.Split(grid, "\n"), chain), "\n")
}
