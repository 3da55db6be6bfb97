package microtable

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// BorderStyle names a set of box-drawing characters that a rendered grid
// can be remapped to with [Border].
type BorderStyle int

const (
	BorderLight   BorderStyle = iota // ┌─┐└┘│┬┴├┤┼ (as rendered)
	BorderRounded                    // ╭─╮╰╯│┬┴├┤┼
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

func (bc borderChars) list() []string {
	return []string{
		bc.topLeft, bc.topRight, bc.bottomLeft, bc.bottomRight,
		bc.horizontal, bc.vertical,
		bc.topTee, bc.bottomTee, bc.leftTee, bc.rightTee,
		bc.cross,
	}
}

var borderSets = map[BorderStyle]borderChars{
	BorderLight: {
		topLeft: glyphTopLeft, topRight: glyphTopRight, bottomLeft: glyphBottomLeft, bottomRight: glyphBottomRight,
		horizontal: glyphHorizontal, vertical: glyphVertical,
		topTee: glyphTopTee, bottomTee: glyphBottomTee, leftTee: glyphLeftTee, rightTee: glyphRightTee,
		cross: glyphCross,
	},
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

var borderNames = map[BorderStyle]string{
	BorderLight:   "light",
	BorderRounded: "rounded",
	BorderASCII:   "ascii",
	BorderHeavy:   "heavy",
	BorderDouble:  "double",
}

// String returns the style name.
func (b BorderStyle) String() string {
	if name, ok := borderNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BorderStyle(%d)", int(b))
}

// ParseBorderStyle parses a style name such as "double" or "ascii".
func ParseBorderStyle(s string) (BorderStyle, error) {
	for b, name := range borderNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return BorderLight, fmt.Errorf("%w: %q", ErrUnknownBorder, s)
}

// Map returns the character map from the rendered light glyphs to this
// style. Glyphs that are the same in both sets are left out, so
// BorderLight maps to an empty map.
func (b BorderStyle) Map() map[string]string {
	target, ok := borderSets[b]
	if !ok {
		return map[string]string{}
	}
	from := borderSets[BorderLight].list()
	to := target.list()
	m := make(map[string]string, len(from))
	for i, glyph := range from {
		if glyph != to[i] {
			m[glyph] = to[i]
		}
	}
	return m
}

// Border returns a formatter that redraws the grid in the given style.
func Border(style BorderStyle) RowFormatter {
	return RemapBorder(style.Map())
}

// RemapBorder returns a formatter that replaces every occurrence of a key of
// styleMap with its value in a single pass. It ignores cell structure and
// can run at any point of a pipeline. An empty map leaves rows untouched.
//
// Remapping the vertical or cross glyph before [Align], [RemoveQuotes] or
// [IndexColumn] hides the columns from them; put it last.
func RemapBorder(styleMap map[string]string) RowFormatter {
	keys := make([]string, 0, len(styleMap))
	for k := range styleMap {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return Map(func(row string) string { return row })
	}
	// Longer keys win over their prefixes; ties sort lexically so the
	// pattern does not depend on map order.
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	re := regexp.MustCompile(strings.Join(quoted, "|"))
	mapping := make(map[string]string, len(keys))
	for _, k := range keys {
		mapping[k] = styleMap[k]
	}
	return Map(func(row string) string {
		return re.ReplaceAllStringFunc(row, func(match string) string {
			return mapping[match]
		})
	})
}
