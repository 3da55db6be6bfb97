// Package microtable renders tabular data as a box-drawing text grid and
// post-processes it through a chain of line formatters.
//
// The entry point is [Table]:
//
//	out, err := microtable.Table(data, &microtable.Options{
//		RowFormatter: []microtable.RowFormatter{
//			microtable.RemoveIndexColumn(),
//			microtable.Align(microtable.AlignRight),
//			microtable.Border(microtable.BorderDouble),
//		},
//	})
//
// # Grid
//
// [ConsoleRenderer] draws the grid with light box-drawing glyphs:
//
//	┌─────────┬────────┬─────┐
//	│ (index) │ name   │ age │
//	├─────────┼────────┼─────┤
//	│ 0       │ 'Satu' │ 30  │
//	│ 1       │ 'Mura' │ 25  │
//	└─────────┴────────┴─────┘
//
// Formatters read this structure from the text itself: data lines carry the
// vertical glyph │ between cells, and the header separator (the border line
// that starts with ├) defines the column widths. Nothing is cached between
// formatters; each one re-reads the lines it is given.
//
// # Formatters
//
// A [RowFormatter] maps one line to any number of lines. [Apply] runs a
// list of them in order, each over the full output of the previous one.
// Lines that do not have the shape a formatter expects pass through
// unchanged, so a formatter never fails on odd input.
//
//   - [RemoveQuotes] — strip the quotes around string cells (always first);
//     the cell shrinks, so follow it with [Align] for a rectangular grid
//   - [Align] — re-pad cells left, center, or right
//   - [RemapBorder], [Border] — swap glyphs, e.g. to [BorderDouble]
//   - [IndexColumn] — drop or rename the "(index)" column
//
// [Format] runs the same pipeline on a grid produced elsewhere.
//
// Put border remapping last: [Align], [RemoveQuotes], and [IndexColumn]
// only recognize the light glyphs.
//
// # Errors
//
//   - [ErrUnsupportedValue] — data holds a channel, func, or other value
//     that has no text form
//   - [ErrInvalidInput] — a yaml scalar could not be decoded
//   - [ErrUnknownAlignment], [ErrUnknownBorder] — bad names passed to
//     [ParseAlignment] or [ParseBorderStyle]
package microtable
