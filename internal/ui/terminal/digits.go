package terminal

import "strings"

// glyphs is a 5-row block font for the characters of an MM:SS display.
var glyphs = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "█", " ", "█", " "},
}

// renderBlock draws text in the block font. Characters without a glyph are skipped.
func renderBlock(text string) string {
	var rows [5][]string
	for _, char := range text {
		glyph, ok := glyphs[char]
		if !ok {
			continue
		}
		for row := range rows {
			rows[row] = append(rows[row], glyph[row])
		}
	}

	lines := make([]string, len(rows))
	for row := range rows {
		lines[row] = strings.Join(rows[row], " ")
	}
	return strings.Join(lines, "\n")
}
